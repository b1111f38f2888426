package history

const (
	InsertEntry = `
		INSERT INTO history (user_id, action, details)
		VALUES ($1, $2, $3)
		RETURNING id, uuid, user_id, action, details, created_at
	`
	SelectUserEntries = `
		SELECT id, uuid, user_id, action, details, created_at
		FROM history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
)
