package user_file

const (
	SelectUserFiles = `
		SELECT id, uuid, user_id, file_name, storage_path, mime_type, data, uploaded_at, NULL::text
		FROM user_files
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, id DESC
	`
	SelectAllFiles = `
		SELECT f.id, f.uuid, f.user_id, f.file_name, f.storage_path, f.mime_type, f.data, f.uploaded_at, u.email
		FROM user_files f
		LEFT JOIN users u ON u.uuid = f.user_id
		ORDER BY f.uploaded_at DESC, f.id DESC
	`
	SelectUserFile = `
		SELECT id, uuid, user_id, file_name, storage_path, mime_type, data, uploaded_at, NULL::text
		FROM user_files
		WHERE uuid = $1 AND user_id = $2
	`
	SelectLatestUserFile = `
		SELECT id, uuid, user_id, file_name, storage_path, mime_type, data, uploaded_at, NULL::text
		FROM user_files
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, id DESC
		LIMIT 1
	`
	// one statement: the previous record is either fully replaced or untouched
	UpsertUserFile = `
		INSERT INTO user_files (user_id, file_name, storage_path, mime_type, data, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id, file_name) DO UPDATE
		SET storage_path = EXCLUDED.storage_path,
		    mime_type = EXCLUDED.mime_type,
		    data = EXCLUDED.data,
		    uploaded_at = EXCLUDED.uploaded_at
		RETURNING
		  id, uuid, user_id, file_name, storage_path, mime_type, data, uploaded_at, NULL::text
	`
	DeleteUserFileByUUID = `DELETE FROM user_files WHERE uuid = $1`
)
