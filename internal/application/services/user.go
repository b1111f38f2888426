package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"excel-analytics-api/internal/application/ports"
	domain "excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/infrastructure/mq"
)

type UserService struct {
	userRepository domain.Repository
	mq             ports.EventPublisher
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	mq ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mq:             mq,
		mCounter:       mCounter,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return u, nil
}

// Register hashes the password and stores the user. A taken email yields
// domain.ErrEmailAlreadyExists and no record.
func (us *UserService) Register(ctx context.Context, u domain.User, password string) (*domain.User, error) {
	if password == "" || strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)
	u.PasswordHash = string(hash)

	uRet, err := us.userRepository.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	us.mq.Publish(mq.NewEvent(mq.UserRegistered, uRet.UUID.String(), map[string]any{
		"name":     uRet.Name,
		"email":    uRet.Email,
		"is_admin": uRet.IsAdmin,
	}))
	us.mCounter.WithLabelValues("user_registered_total").Inc()

	return uRet, nil
}
