package user

import (
	"context"

	"filetag-api/internal/domain/user"
	"filetag-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var us Users
	for rows.Next() {
		u := new(User)

		if err = rows.Scan(
			&u.UserID,
			&u.PrimaryEmail,
			&u.CreatedAt,
		); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) SaveUser(ctx context.Context, req *user.User) error {
	_, err := r.db.Exec(
		ctx,
		UpsertUser,
		req.UserID,
		req.PrimaryEmail,
		req.CreatedAt,
	)

	return err
}
