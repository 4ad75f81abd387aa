package account

import (
	"context"

	"filetag-api/internal/domain/account"
	"filetag-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) account.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchAccounts(ctx context.Context) (account.Accounts, error) {
	rows, err := r.db.Query(ctx, SelectAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var as Accounts
	for rows.Next() {
		a := new(Account)

		if err = rows.Scan(
			&a.Email,
			&a.OwnerUserID,
			&a.ActivationKey,
			&a.SignInCodeHash,
			&a.SignInKey,
			&a.IsActivated,

			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}

		as = append(as, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&as), nil
}

func (r *Repository) SaveAccount(ctx context.Context, req *account.Account) error {
	_, err := r.db.Exec(
		ctx,
		UpsertAccount,
		req.Email,
		req.OwnerUserID,
		req.ActivationKey,
		req.SignInCodeHash,
		req.SignInKey,
		req.IsActivated,
		req.CreatedAt,
		req.UpdatedAt,
	)

	return err
}
