package shortcut

import (
	"context"

	"filetag-api/internal/domain/shortcut"
	"filetag-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) shortcut.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchShortcuts(ctx context.Context) (shortcut.Shortcuts, error) {
	rows, err := r.db.Query(ctx, SelectShortcuts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scs Shortcuts
	for rows.Next() {
		sc := new(Shortcut)

		if err = rows.Scan(
			&sc.ShortcutKey,
			&sc.OwnerUserID,
			&sc.OriginalName,
			&sc.Destination,
			&sc.ContentType,
			&sc.ContentLength,
			&sc.SessionID,

			&sc.CreatedDate,
		); err != nil {
			return nil, err
		}

		scs = append(scs, sc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&scs), nil
}

func (r *Repository) SaveShortcut(ctx context.Context, req *shortcut.Shortcut) error {
	_, err := r.db.Exec(
		ctx,
		UpsertShortcut,
		req.ShortcutKey,
		req.OwnerUserID,
		req.OriginalName,
		req.Destination,
		req.ContentType,
		req.ContentLength,
		req.SessionID,
		req.CreatedDate,
	)

	return err
}
