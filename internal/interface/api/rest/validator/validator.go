package validator

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
)

var (
	accessKeyRe  = regexp.MustCompile(`^(/)?[A-Fa-f0-9]{64}$`)
	signInCodeRe = regexp.MustCompile(`^[0-9A-Za-z]{4,12}$`)
)

// IsEmail reports whether a route capture is a plausible address and
// returns its normalized form. A leading path separator is tolerated.
func IsEmail(s string) (bool, string) {
	s = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "/")))
	if s == "" {
		return false, ""
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return false, ""
	}
	return true, s
}

// IsAccessKey reports whether a raw download key has the opaque hex
// shape shortcut keys are minted with.
func IsAccessKey(s string) bool {
	return accessKeyRe.MatchString(strings.TrimSpace(s))
}

func IsSignInCode(s string) bool {
	return signInCodeRe.MatchString(strings.TrimSpace(s))
}

// TransactionLength parses the declared part count of an upload
// transaction; a lone file is its own transaction of size 1.
func TransactionLength(s string) int {
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
