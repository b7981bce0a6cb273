package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"jobtracker/internal/domain"
	"jobtracker/internal/ports"
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

type UserService struct {
	repo   ports.UserRepository
	logger ports.Logger
}

func NewUserService(repo ports.UserRepository, logger ports.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Signup(ctx context.Context, input SignupInput) (domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	now := time.Now().UTC()
	user := domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.logger.Error(ctx, "signup failed", "email", email, "error", err)
		return domain.User{}, err
	}
	return created, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, domain.ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// guardUserAccess admits the user itself or an administrator. Unlike job
// records, the user resource keeps the admin override.
func guardUserAccess(caller domain.Identity, userID string) error {
	if caller.ID == "" {
		return domain.ErrUnauthenticated
	}
	if caller.ID != userID && !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func (s *UserService) Update(ctx context.Context, caller domain.Identity, userID string, patch UserPatch) (domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if err := guardUserAccess(caller, user.ID); err != nil {
		return domain.User{}, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if email == "" || !strings.Contains(email, "@") {
			return domain.User{}, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	if patch.Password != nil {
		if len(*patch.Password) < 6 {
			return domain.User{}, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error(ctx, "update user failed", "user_id", user.ID, "error", err)
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, caller domain.Identity, userID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := guardUserAccess(caller, user.ID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, user.ID)
}
