package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmehra2102/smart-inventory/internal/identity/domain"
)

// Service issues and resolves session tokens. The rest of the system only
// ever sees the resolved Session record.
type Service struct {
	log      *slog.Logger
	users    UserRepository
	sessions SessionStore
}

func NewService(log *slog.Logger, users UserRepository, sessions SessionStore) *Service {
	return &Service{log: log, users: users, sessions: sessions}
}

func (s *Service) Signup(ctx context.Context, firstName, lastName, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return domain.ErrMissingField
	}
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	u := domain.User{
		Role:         domain.RoleCustomer,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: domain.HashPassword(password),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	s.log.Info("user signed up", "email", email)
	return nil
}

func (s *Service) Login(ctx context.Context, username, password string) (domain.Session, error) {
	u, err := s.users.FindByEmail(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, err
	}
	if u.PasswordHash != domain.HashPassword(password) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	sess := domain.Session{
		Token: uuid.NewString(),
		Role:  u.Role,
		Name:  strings.TrimSpace(u.FirstName + " " + u.LastName),
		Email: u.Email,
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Logout is idempotent; revoking an unknown token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Resolve maps a bearer token to its caller record.
func (s *Service) Resolve(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrUnauthorized
	}
	return s.sessions.Get(ctx, token)
}

// SeedAdmin installs the bootstrap admin account if it is missing.
func (s *Service) SeedAdmin(ctx context.Context) error {
	_, err := s.users.FindByEmail(ctx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	admin := domain.User{
		Role:         domain.RoleAdmin,
		FirstName:    "Store",
		LastName:     "Admin",
		Email:        "admin",
		PasswordHash: domain.HashPassword("admin123"),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.log.Info("admin account seeded")
	return nil
}
