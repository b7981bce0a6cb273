package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobtracker/internal/domain"
	"jobtracker/internal/ports"
)

type TestimonialService struct {
	repo   ports.TestimonialRepository
	logger ports.Logger
}

func NewTestimonialService(repo ports.TestimonialRepository, logger ports.Logger) *TestimonialService {
	return &TestimonialService{repo: repo, logger: logger}
}

func (s *TestimonialService) List(ctx context.Context) ([]domain.Testimonial, error) {
	return s.repo.List(ctx)
}

func (s *TestimonialService) Create(ctx context.Context, caller domain.Identity, author, quote string) (domain.Testimonial, error) {
	if caller.ID == "" {
		return domain.Testimonial{}, domain.ErrUnauthenticated
	}
	author = strings.TrimSpace(author)
	quote = strings.TrimSpace(quote)
	if author == "" {
		return domain.Testimonial{}, fmt.Errorf("%w: author is required", domain.ErrInvalidInput)
	}
	if quote == "" {
		return domain.Testimonial{}, fmt.Errorf("%w: quote is required", domain.ErrInvalidInput)
	}
	testimonial := domain.Testimonial{
		Author:    author,
		Quote:     quote,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, testimonial)
	if err != nil {
		s.logger.Error(ctx, "create testimonial failed", "error", err)
		return domain.Testimonial{}, err
	}
	return created, nil
}

type ContactService struct {
	repo   ports.ContactMessageRepository
	logger ports.Logger
}

func NewContactService(repo ports.ContactMessageRepository, logger ports.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

func (s *ContactService) Create(ctx context.Context, name, email, message string) (domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	message = strings.TrimSpace(message)
	if name == "" {
		return domain.ContactMessage{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return domain.ContactMessage{}, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if message == "" {
		return domain.ContactMessage{}, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	contact := domain.ContactMessage{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		s.logger.Error(ctx, "create contact message failed", "error", err)
		return domain.ContactMessage{}, err
	}
	return created, nil
}
