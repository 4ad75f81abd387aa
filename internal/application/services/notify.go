package services

import (
	"time"

	"github.com/google/uuid"

	"filetag-api/config"
	"filetag-api/internal/application/ports"
	"filetag-api/internal/domain/account"
	"filetag-api/internal/infrastructure/mq"
)

// NotifyService publishes notification events for the mail worker to
// deliver.
type NotifyService struct {
	mq  ports.RabbitMQ
	cfg config.Config
}

func NewNotifyService(rabbit ports.RabbitMQ, cfg config.Config) ports.Notifier {
	return &NotifyService{
		mq:  rabbit,
		cfg: cfg,
	}
}

func (ns *NotifyService) UploadCompleted(acc *account.Account, files []mq.FileLink) {
	ns.mq.GetInputChan() <- mq.Event{
		Id:        uuid.New(),
		TS:        time.Now().UTC(),
		Kind:      mq.KindUploadCompleted,
		Email:     acc.Email,
		BrowseURL: ns.cfg.App.EntryURL + "/a/" + acc.ActivationKey,
		Files:     files,
	}
}

func (ns *NotifyService) SignInCode(acc *account.Account, code string) {
	ns.mq.GetInputChan() <- mq.Event{
		Id:         uuid.New(),
		TS:         time.Now().UTC(),
		Kind:       mq.KindSignInCode,
		Email:      acc.Email,
		SignInCode: code,
	}
}
