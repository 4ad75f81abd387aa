package directory

import (
	"context"

	"filetag-api/internal/domain/directory"
	"filetag-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) directory.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchDirectories(ctx context.Context) (directory.Directories, error) {
	rows, err := r.db.Query(ctx, SelectDirectories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ds Directories
	for rows.Next() {
		d := new(Directory)

		if err = rows.Scan(
			&d.DirectoryID,
			&d.SessionID,
			&d.OwnerUserID,
			&d.PhysicalPath,
			&d.UsageType,
			&d.LimitedSize,
			&d.PublicUpload,
			&d.PublicDownload,
			&d.IsEnabled,

			&d.CreatedDate,
		); err != nil {
			return nil, err
		}

		ds = append(ds, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ds), nil
}

func (r *Repository) SaveDirectory(ctx context.Context, req *directory.Directory) error {
	_, err := r.db.Exec(
		ctx,
		UpsertDirectory,
		req.DirectoryID,
		req.SessionID,
		req.OwnerUserID,
		req.PhysicalPath,
		req.UsageType,
		req.LimitedSize,
		req.PublicUpload,
		req.PublicDownload,
		req.IsEnabled,
		req.CreatedDate,
	)

	return err
}
