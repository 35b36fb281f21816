package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/repository"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// AuthService coordinates registration, login and account flows.
type AuthService struct {
	users       repository.UserRepository
	items       repository.ItemRepository
	resets      repository.PasswordResetRepository
	attempts    repository.LoginAttemptRepository
	dispatcher  events.Dispatcher
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	resetTTL    time.Duration
	maxAttempts int64
	loginWindow time.Duration
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	ItemRepo          repository.ItemRepository
	PasswordResetRepo repository.PasswordResetRepository
	LoginAttemptRepo  repository.LoginAttemptRepository
	Dispatcher        events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		items:       deps.ItemRepo,
		resets:      deps.PasswordResetRepo,
		attempts:    deps.LoginAttemptRepo,
		dispatcher:  deps.Dispatcher,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenIssuer, cfg.Auth.TokenTTL()),
		bcryptCost:  cfg.Auth.BcryptCost,
		resetTTL:    time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		maxAttempts: int64(cfg.Auth.LoginMaxAttempts),
		loginWindow: cfg.Auth.LoginWindow(),
	}
}

// Register creates a new account. The password must pass the complexity
// rule before anything is persisted.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, "", time.Time{}, apperrors.NewValidationError(err.Error(), nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Email: user.Email})
	return user, token, exp, nil
}

// Login authenticates an account and issues a fresh token. Repeated
// failures for the same email are throttled.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if s.attempts != nil && s.maxAttempts > 0 {
		count, err := s.attempts.Failures(ctx, email)
		if err == nil && count >= s.maxAttempts {
			return nil, "", time.Time{}, apperrors.NewTooManyRequests("too many login attempts")
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, email)
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	if s.attempts != nil {
		_ = s.attempts.Reset(ctx, email)
	}

	token, exp, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Profile returns the authenticated subject's own record.
func (s *AuthService) Profile(ctx context.Context, subjectID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// GetUser fetches a user record by path id. The id must equal the
// authenticated subject's id; mismatch is rejected regardless of whether
// the record exists.
func (s *AuthService) GetUser(ctx context.Context, subjectID, pathID string) (*domain.User, error) {
	if pathID != subjectID {
		return nil, apperrors.NewUnauthorized("subject mismatch")
	}
	return s.Profile(ctx, subjectID)
}

// UserUpdateInput carries optional account updates.
type UserUpdateInput struct {
	Email    *string
	Password *string
}

// UpdateUser changes the subject's own email and/or password.
func (s *AuthService) UpdateUser(ctx context.Context, subjectID, pathID string, input UserUpdateInput) (*domain.User, error) {
	if pathID != subjectID {
		return nil, apperrors.NewUnauthorized("subject mismatch")
	}

	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		if err := auth.ValidatePassword(*input.Password); err != nil {
			return nil, apperrors.NewValidationError(err.Error(), nil)
		}
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the subject's own account together with every item it
// owns. The schema's ON DELETE CASCADE backstops the explicit item delete.
func (s *AuthService) DeleteUser(ctx context.Context, subjectID, pathID string) error {
	if pathID != subjectID {
		return apperrors.NewUnauthorized("subject mismatch")
	}

	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	if err := s.items.DeleteByOwner(ctx, subjectID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, subjectID); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserDeleted, subjectID, events.UserDeletedPayload{Email: user.Email})
	return nil
}

// RequestPasswordReset persists a single-use reset token for the email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("reset token", nil)
		}
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token expired or used", nil)
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.attempts == nil {
		return
	}
	_, _ = s.attempts.RecordFailure(ctx, email, s.loginWindow)
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, ownerID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
