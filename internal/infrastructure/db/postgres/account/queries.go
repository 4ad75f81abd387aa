package account

const (
	SelectAccounts = `
		SELECT email, owner_user_id, activation_key, signin_code_hash, signin_key, is_activated, created_at, updated_at
		FROM accounts
	`
	UpsertAccount = `
		INSERT INTO accounts (email, owner_user_id, activation_key, signin_code_hash, signin_key, is_activated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE
		SET owner_user_id = EXCLUDED.owner_user_id,
		    activation_key = EXCLUDED.activation_key,
		    signin_code_hash = EXCLUDED.signin_code_hash,
		    signin_key = EXCLUDED.signin_key,
		    is_activated = EXCLUDED.is_activated,
		    updated_at = EXCLUDED.updated_at
	`
)
