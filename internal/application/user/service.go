package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AadiZee/car-system-api/internal/domain"
	"github.com/AadiZee/car-system-api/internal/infrastructure/smtp"
	"github.com/AadiZee/car-system-api/internal/pkg/id"
	"github.com/AadiZee/car-system-api/internal/pkg/password"
)

type Service interface {
	// Register creates an identity with a system-generated password and
	// mails the password to the address. The password never appears in the
	// return value.
	Register(ctx context.Context, req domain.RegisterRequest) error
	// Login verifies credentials and returns the identity plus a signed
	// session token.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error)
	// UpdateEmail moves the identity to a new address and returns a fresh
	// token carrying the new claims.
	UpdateEmail(ctx context.Context, req domain.UpdateEmailRequest) (*domain.User, string, error)
	UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest) error
	Delete(ctx context.Context, email string) error
}

type userStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateEmail(ctx context.Context, oldEmail, newEmail string) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (*domain.User, error)
	Delete(ctx context.Context, email string) error
}

type tokenIssuer interface {
	Issue(u *domain.User) (string, error)
}

type service struct {
	repo   userStore
	mailer smtp.Mailer
	tokens tokenIssuer
}

func NewService(repo userStore, mailer smtp.Mailer, tokens tokenIssuer) Service {
	return &service{repo: repo, mailer: mailer, tokens: tokens}
}

// normalizeEmail trims whitespace and lowercases, matching what the store
// indexes on. Syntax validation happens at the boundary.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	email := normalizeEmail(req.Email)

	// Pre-check for a friendly message; the store's conditional put is what
	// actually arbitrates concurrent registrations.
	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("email already exists: %w", domain.ErrConflict)
	}

	plain, err := password.Generate()
	if err != nil {
		return err
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return err
	}

	body, err := smtp.RenderWelcome(plain)
	if err != nil {
		return err
	}
	if err := s.mailer.SendEmail(u.Email, smtp.WelcomeSubject, body); err != nil {
		// The account now exists but the user never received its password.
		// There is no automated recovery; log enough for a manual resend.
		slog.Error("welcome email delivery failed", "user_id", u.UserID, "err", err)
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	email := normalizeEmail(req.Email)
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, "", err
		}
		// Same client-facing message as a wrong password so login cannot be
		// used to enumerate registered addresses.
		slog.Debug("login failed: unknown email", "email", email)
		return nil, "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !password.Verify(u.PasswordHash, req.Password) {
		slog.Debug("login failed: wrong password", "user_id", u.UserID)
		return nil, "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) UpdateEmail(ctx context.Context, req domain.UpdateEmailRequest) (*domain.User, string, error) {
	oldEmail := normalizeEmail(req.Email)
	newEmail := normalizeEmail(req.NewEmail)

	taken, err := s.repo.ExistsByEmail(ctx, newEmail)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", fmt.Errorf("new email already exists: %w", domain.ErrConflict)
	}
	u, err := s.repo.UpdateEmail(ctx, oldEmail, newEmail)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest) error {
	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	_, err = s.repo.UpdatePassword(ctx, normalizeEmail(req.Email), hash)
	return err
}

func (s *service) Delete(ctx context.Context, email string) error {
	return s.repo.Delete(ctx, normalizeEmail(email))
}
