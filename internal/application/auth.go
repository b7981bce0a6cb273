package application

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"jobtracker/internal/domain"
	"jobtracker/internal/ports"
)

type AuthService struct {
	users  ports.UserRepository
	issuer ports.TokenIssuer
	logger ports.Logger
}

func NewAuthService(users ports.UserRepository, issuer ports.TokenIssuer, logger ports.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, logger: logger}
}

// SignIn verifies an email/password pair and mints a bearer token. Lookup
// misses and password mismatches are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", domain.User{}, domain.ErrUnauthenticated
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, domain.ErrUnauthenticated
		}
		s.logger.Error(ctx, "signin lookup failed", "error", err)
		return "", domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.User{}, domain.ErrUnauthenticated
	}
	token, err := s.issuer.Issue(domain.Identity{ID: user.ID, Role: user.Role})
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "user_id", user.ID, "error", err)
		return "", domain.User{}, err
	}
	return token, user, nil
}
