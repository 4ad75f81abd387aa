package services

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
)

const signInCodeDigits = 6

// newOpaqueKey mints a 256-bit random hex token. Shortcut keys and
// sign-in keys are the sole access credential for their resources, so
// they must be collision-resistant and non-enumerable.
func newOpaqueKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// newSignInCode mints a short numeric code for out-of-band delivery.
func newSignInCode() string {
	var sb strings.Builder
	for i := 0; i < signInCodeDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic("crypto/rand unavailable: " + err.Error())
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String()
}

// normalizeEmail lower-cases and trims an address; a leading path
// separator from route captures is tolerated.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(email, "/")))
}

// normalizeKey strips the leading path separator a raw route capture
// may carry.
func normalizeKey(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "/")
}
