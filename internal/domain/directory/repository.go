package directory

import (
	"context"
)

type Repository interface {
	FetchDirectories(ctx context.Context) (Directories, error)
	SaveDirectory(ctx context.Context, req *Directory) error
}
