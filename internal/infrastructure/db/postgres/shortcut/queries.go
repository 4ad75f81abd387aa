package shortcut

const (
	SelectShortcuts = `
		SELECT shortcut_key, owner_user_id, original_name, destination, content_type, content_length, session_id, created_date
		FROM shortcuts
		ORDER BY created_date
	`
	UpsertShortcut = `
		INSERT INTO shortcuts (shortcut_key, owner_user_id, original_name, destination, content_type, content_length, session_id, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (shortcut_key) DO UPDATE
		SET original_name = EXCLUDED.original_name,
		    destination = EXCLUDED.destination,
		    content_type = EXCLUDED.content_type,
		    content_length = EXCLUDED.content_length
	`
)
