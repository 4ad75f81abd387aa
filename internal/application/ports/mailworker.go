package ports

import "context"

type MailWorker interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
}
