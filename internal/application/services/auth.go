package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/infrastructure/jwt"
)

type AuthService struct {
	jwtService *jwt.Service
	tokenTTL   time.Duration
}

func NewAuthService(
	jwtService *jwt.Service,
	tokenTTL time.Duration,
) ports.Auth {
	return &AuthService{
		jwtService: jwtService,
		tokenTTL:   tokenTTL,
	}
}

func (as *AuthService) GenerateToken(u *user.User, requestPassword string) (string, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(requestPassword))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), u.IsAdmin, u.Name, as.tokenTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}
