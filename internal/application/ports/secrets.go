package ports

import "context"

// SecretProvider retrieves managed credentials at startup, falling
// back to environment-supplied values when no vault is configured.
type SecretProvider interface {
	Fetch(ctx context.Context, name string) (string, error)
}
