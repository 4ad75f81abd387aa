package directory

const (
	SelectDirectories = `
		SELECT directory_id, session_id, owner_user_id, physical_path, usage_type, limited_size, public_upload, public_download, is_enabled, created_date
		FROM directories
	`
	UpsertDirectory = `
		INSERT INTO directories (directory_id, session_id, owner_user_id, physical_path, usage_type, limited_size, public_upload, public_download, is_enabled, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (directory_id) DO UPDATE
		SET owner_user_id = EXCLUDED.owner_user_id,
		    limited_size = EXCLUDED.limited_size,
		    public_upload = EXCLUDED.public_upload,
		    public_download = EXCLUDED.public_download,
		    is_enabled = EXCLUDED.is_enabled
	`
)
