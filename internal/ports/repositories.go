package ports

import (
	"context"
	"jobtracker/internal/domain"
)

type JobRepository interface {
	// Create assigns the record id and persists the job.
	Create(ctx context.Context, job domain.Job) (domain.Job, error)
	GetByID(ctx context.Context, jobID string) (domain.Job, error)
	// ListByOwner returns the owner's jobs ordered by applied date, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error)
	Update(ctx context.Context, job domain.Job) error
	Delete(ctx context.Context, jobID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, userID string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, userID string) error
}

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error)
	List(ctx context.Context) ([]domain.Testimonial, error)
}

type ContactMessageRepository interface {
	Create(ctx context.Context, message domain.ContactMessage) (domain.ContactMessage, error)
}

// TokenIssuer mints a bearer credential for a verified identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}
