package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/tasklist/core/internal/domain/entities"
	"github.com/tasklist/core/internal/infrastructure/logger"
	"github.com/tasklist/core/internal/ports"
)

// passwordSymbols is the symbol set accepted by the strength rule.
const passwordSymbols = "!@#$%^&*"

// digestPassword computes the one-way digest stored for an account and
// matched by the store on login.
func digestPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// UserService handles account operations
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser validates the signup input and persists a new account.
// Validation runs in a fixed order so the first failing rule determines
// the reported error.
func (s *UserService) CreateUser(ctx context.Context, req ports.CreateUserRequest) error {
	if err := validateSignup(req); err != nil {
		return err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return fmt.Errorf("check existing email: %w", err)
	}
	if existing != nil {
		return entities.ErrEmailTaken
	}

	user := &entities.User{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          req.Email,
		PasswordDigest: digestPassword(req.Password),
		CreatedAt:      time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	s.logger.Infow("User registered", "user_id", user.ID, "email", user.Email)

	return nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordDigest = ""

	return user, nil
}

func validateSignup(req ports.CreateUserRequest) error {
	if len(req.Name) < 3 {
		return entities.ErrInvalidName
	}

	if len(req.Email) < 4 || !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return entities.ErrInvalidEmail
	}

	// The legacy >= 4 minimum predates the strength rule and is kept
	// alongside it.
	if len(req.Password) < 4 || !strongPassword(req.Password) {
		return entities.ErrInvalidPassword
	}

	return nil
}

// strongPassword requires at least one lowercase letter, one uppercase
// letter, one digit, one symbol from passwordSymbols and eight
// characters total.
func strongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	return lower && upper && digit && symbol
}
