// Package auth implements the admin login flow and token issuance gating the
// mutation endpoints.
package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/acmlab/labsite/internal/domain"
)

type Service struct {
	repo domain.UserRepository
	jwt  *JWTManager
	log  *slog.Logger
}

func NewService(repo domain.UserRepository, jwt *JWTManager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, jwt: jwt, log: log}
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords produce the same unauthorized error so the endpoint does
// not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.jwt.Generate(user.ID, user.Role)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "token generation failed", err)
	}

	return &TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Role:      user.Role,
	}, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist.
// Called once at startup with credentials from configuration.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !domain.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewAppError(domain.CodeInternal, "password hashing failed", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "bootstrap admin account created",
		slog.String("username", username))
	return nil
}
