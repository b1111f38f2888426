package user

const (
	SelectUsers = `
		SELECT id, uuid, name, email, password_hash, is_admin, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`
	SelectUserByID = `
		SELECT id, uuid, name, email, password_hash, is_admin, created_at
		FROM users
		WHERE uuid = $1
	`
	SelectUserByEmail = `
		SELECT id, uuid, name, email, password_hash, is_admin, created_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING
		  id, uuid, name, email, password_hash, is_admin, created_at
	`
	DeleteUserByUUID = `
		DELETE FROM users
		WHERE uuid = $1
		RETURNING
		  id, uuid, name, email, password_hash, is_admin, created_at
	`
)
