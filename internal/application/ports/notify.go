package ports

import (
	"filetag-api/internal/domain/account"
	"filetag-api/internal/infrastructure/mq"
)

// Notifier hands messages to the mail-delivery collaborator.
// Dispatch is fire-and-forget: a lost notification never fails the
// upload that produced it.
type Notifier interface {
	UploadCompleted(acc *account.Account, files []mq.FileLink)
	SignInCode(acc *account.Account, code string)
}
