package domain

import "time"

type Status string

const (
	StatusApplied      Status = "Applied"
	StatusPending      Status = "Pending"
	StatusInterviewing Status = "Interviewing"
	StatusOffer        Status = "Offer"
	StatusRejected     Status = "Rejected"
)

var statuses = map[Status]struct{}{
	StatusApplied:      {},
	StatusPending:      {},
	StatusInterviewing: {},
	StatusOffer:        {},
	StatusRejected:     {},
}

func (s Status) Valid() bool {
	_, ok := statuses[s]
	return ok
}

// Job is one tracked job application. OwnerID is bound once at creation from
// the authenticated identity and never changes afterwards.
type Job struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	Status      Status    `json:"status"`
	AppliedDate time.Time `json:"appliedDate"`
	Link        string    `json:"link,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated caller, derived from a verified credential.
// It is never populated from a request body.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Testimonial struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
