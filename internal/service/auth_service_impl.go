package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/taskboard/internal/auth"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

type authService struct {
	users    repository.UserRepo
	tokens   repository.TokenRepo
	resets   repository.PasswordResetRepo
	mailer   Mailer
	baseURL  string
	resetTTL time.Duration
}

// NewAuthService creates the auth flow service. baseURL is the public root
// used to build reset links; resetTTL bounds reset token validity.
func NewAuthService(users repository.UserRepo, tokens repository.TokenRepo, resets repository.PasswordResetRepo, mailer Mailer, baseURL string, resetTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		resets:   resets,
		mailer:   mailer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		resetTTL: resetTTL,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*Credentials, error) {
	u := &domain.User{
		ID:        uuid.New().String(),
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		CreatedAt: time.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, NewValidationError(validationField(err), err.Error())
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, NewValidationError("password", err.Error())
	}
	u.PasswordHash = hash

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.duplicateFieldError(ctx, u)
		}
		return nil, err
	}

	key, err := s.getOrCreateToken(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &Credentials{Token: key, UserID: u.ID, Email: u.Email}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*Credentials, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	key, err := s.getOrCreateToken(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &Credentials{Token: key, UserID: u.ID, Email: u.Email}, nil
}

func (s *authService) Logout(ctx context.Context, actorID string) error {
	if actorID == "" {
		return ErrUnauthorized
	}
	return s.tokens.DeleteForUser(ctx, actorID)
}

// RequestPasswordReset always reports success for well-formed input so that
// the response does not reveal whether the email is registered. Email
// delivery is fire-and-forget for the same reason.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("email", "email is required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	raw, hash, err := auth.NewResetToken()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	pr := &domain.PasswordReset{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.resetTTL),
		CreatedAt: now,
	}
	if err := s.resets.Create(ctx, pr); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s/%s/", s.baseURL, auth.EncodeUID(u.ID), raw)
	_ = s.mailer.SendPasswordReset(ctx, u.Email, resetURL)
	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {
	userID, err := auth.DecodeUID(uid)
	if err != nil {
		return NewValidationError("uid", "Invalid value")
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewValidationError("uid", "Invalid value")
		}
		return err
	}

	pr, err := s.resets.GetActive(ctx, u.ID, auth.HashResetToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewValidationError("token", "Invalid value")
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return NewValidationError("new_password", err.Error())
	}
	if err := s.resets.MarkUsed(ctx, pr.ID); err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

func (s *authService) Authenticate(ctx context.Context, key string) (*domain.User, error) {
	userID, err := s.tokens.UserIDForKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *authService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// getOrCreateToken reuses the user's existing bearer token or issues one.
func (s *authService) getOrCreateToken(ctx context.Context, userID string) (string, error) {
	key, err := s.tokens.KeyForUser(ctx, userID)
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	key = auth.NewTokenKey()
	if err := s.tokens.Create(ctx, key, userID); err != nil {
		return "", err
	}
	return key, nil
}

// duplicateFieldError attributes a uniqueness violation to username or email.
func (s *authService) duplicateFieldError(ctx context.Context, u *domain.User) error {
	if _, err := s.users.GetByUsername(ctx, u.Username); err == nil {
		return NewValidationError("username", "A user with that username already exists.")
	}
	return NewValidationError("email", "A user with that email already exists.")
}

// validationField guesses the offending field from a domain validation
// message for the DRF-style error body.
func validationField(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "username"):
		return "username"
	case strings.Contains(msg, "email"):
		return "email"
	default:
		return "detail"
	}
}
