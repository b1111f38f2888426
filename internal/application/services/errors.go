package services

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("access denied: admin privileges required")
	ErrNotFound             = errors.New("not found")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	ErrUploadFailed         = errors.New("upload failed")
	ErrAnalysisFailed       = errors.New("analysis failed")
	ErrServiceUnavailable   = errors.New("realtime channel not initialized")

	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)
