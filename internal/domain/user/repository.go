package user

import (
	"context"
)

type Repository interface {
	FetchUsers(ctx context.Context) (Users, error)
	SaveUser(ctx context.Context, req *User) error
}
