package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"watchmate/internal/microservices/http-api/models"
	"watchmate/internal/microservices/http-api/repository"
	"watchmate/internal/middleware/auth"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password, password2 string) (*models.User, *models.Token, error)
	Login(ctx context.Context, username, password string) (*models.User, *models.Token, error)
	// Logout deletes the token and reports whether one existed.
	Logout(ctx context.Context, key string) (bool, error)
	Authenticate(ctx context.Context, key string) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, email, password string) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	logger *slog.Logger,
) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Register creates the account and hands back its API token.
func (s *authService) Register(ctx context.Context, username, email, password, password2 string) (*models.User, *models.Token, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	fieldErrs := FieldErrors{}
	if password2 != "" && password != password2 {
		fieldErrs.Add("password2", "Passwords must match.")
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		fieldErrs.Add("username", "A user with that username already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("lookup username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		fieldErrs.Add("email", "Email already exists!")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("lookup email: %w", err)
	}
	if err := fieldErrs.errOrNil(); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, nil, FieldErrors{"username": {"A user with that username already exists."}}
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokenFor(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login verifies credentials and returns the user's token, creating it if needed.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, *models.Token, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("lookup user: %w", err)
		}
		// keep timing identical for unknown users
		auth.BurnPasswordCheck(password)
		return nil, nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.tokenFor(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}

	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	deleted, err := s.tokenRepo.Delete(ctx, key)
	if err != nil {
		return false, fmt.Errorf("delete token: %w", err)
	}
	return deleted, nil
}

func (s *authService) Authenticate(ctx context.Context, key string) (*models.User, error) {
	token, err := s.tokenRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	if token.User == nil {
		return nil, ErrInvalidToken
	}
	return token.User, nil
}

// EnsureAdmin makes sure an admin account named username exists. An existing
// account is promoted; its password is left untouched.
func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		if !user.IsAdmin() {
			if err := s.userRepo.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
				return nil, fmt.Errorf("promote admin: %w", err)
			}
			user.Role = models.RoleAdmin
			s.logger.Info("promoted user to admin", "username", username)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user = &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info("created admin account", "username", username)
	return user, nil
}

// tokenFor returns the user's token, creating one on first use.
func (s *authService) tokenFor(ctx context.Context, userID string) (*models.Token, error) {
	token, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup token: %w", err)
	}

	key, err := auth.GenerateTokenKey()
	if err != nil {
		return nil, err
	}
	token = &models.Token{Key: key, UserID: userID}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// a concurrent login created it first
			return s.tokenRepo.FindByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("create token: %w", err)
	}
	return token, nil
}
