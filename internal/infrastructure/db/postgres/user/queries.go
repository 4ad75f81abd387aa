package user

const (
	SelectUsers = `
		SELECT user_id, primary_email, created_at
		FROM users
	`
	UpsertUser = `
		INSERT INTO users (user_id, primary_email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET primary_email = EXCLUDED.primary_email
	`
)
