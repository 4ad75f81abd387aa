package ports

import "context"

// Mailer delivers a rendered message. Delivery errors are logged by
// callers, never retried.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}
