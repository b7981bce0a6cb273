package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobtracker/internal/domain"
	"jobtracker/internal/ports"
)

// JobInput carries the client-suppliable fields for a new job record. The
// owner is never part of it; it is always taken from the caller identity.
type JobInput struct {
	Company     string
	Role        string
	Status      string
	AppliedDate *time.Time
	Link        string
	Notes       string
}

// JobPatch is the allow-list of mutable fields for an update. Anything not
// present here (id, owner, created-at) cannot be changed through the API.
type JobPatch struct {
	Company     *string
	Role        *string
	Status      *string
	AppliedDate *time.Time
	Link        *string
	Notes       *string
}

type JobService struct {
	repo   ports.JobRepository
	logger ports.Logger
}

func NewJobService(repo ports.JobRepository, logger ports.Logger) *JobService {
	return &JobService{repo: repo, logger: logger}
}

func (s *JobService) Create(ctx context.Context, caller domain.Identity, input JobInput) (domain.Job, error) {
	if caller.ID == "" {
		return domain.Job{}, domain.ErrUnauthenticated
	}
	company := strings.TrimSpace(input.Company)
	role := strings.TrimSpace(input.Role)
	if company == "" {
		return domain.Job{}, fmt.Errorf("%w: company is required", domain.ErrInvalidInput)
	}
	if role == "" {
		return domain.Job{}, fmt.Errorf("%w: role is required", domain.ErrInvalidInput)
	}
	status := domain.StatusApplied
	if input.Status != "" {
		status = domain.Status(input.Status)
		if !status.Valid() {
			return domain.Job{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, input.Status)
		}
	}
	now := time.Now().UTC()
	appliedDate := now
	if input.AppliedDate != nil {
		appliedDate = input.AppliedDate.UTC()
	}
	job := domain.Job{
		OwnerID:     caller.ID,
		Company:     company,
		Role:        role,
		Status:      status,
		AppliedDate: appliedDate,
		Link:        strings.TrimSpace(input.Link),
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.repo.Create(ctx, job)
	if err != nil {
		s.logger.Error(ctx, "create job failed", "owner_id", caller.ID, "error", err)
		return domain.Job{}, err
	}
	return created, nil
}

func (s *JobService) ListByOwner(ctx context.Context, caller domain.Identity) ([]domain.Job, error) {
	if caller.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListByOwner(ctx, caller.ID)
}

func (s *JobService) Get(ctx context.Context, caller domain.Identity, jobID string) (domain.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return domain.Job{}, err
	}
	if err := guardOwnership(caller, job.OwnerID); err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

func (s *JobService) Update(ctx context.Context, caller domain.Identity, jobID string, patch JobPatch) (domain.Job, error) {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return domain.Job{}, err
	}
	if err := guardOwnership(caller, job.OwnerID); err != nil {
		return domain.Job{}, err
	}
	if patch.Company != nil {
		company := strings.TrimSpace(*patch.Company)
		if company == "" {
			return domain.Job{}, fmt.Errorf("%w: company is required", domain.ErrInvalidInput)
		}
		job.Company = company
	}
	if patch.Role != nil {
		role := strings.TrimSpace(*patch.Role)
		if role == "" {
			return domain.Job{}, fmt.Errorf("%w: role is required", domain.ErrInvalidInput)
		}
		job.Role = role
	}
	if patch.Status != nil {
		status := domain.Status(*patch.Status)
		if !status.Valid() {
			return domain.Job{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *patch.Status)
		}
		job.Status = status
	}
	if patch.AppliedDate != nil {
		job.AppliedDate = patch.AppliedDate.UTC()
	}
	if patch.Link != nil {
		job.Link = strings.TrimSpace(*patch.Link)
	}
	if patch.Notes != nil {
		job.Notes = *patch.Notes
	}
	job.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, job); err != nil {
		s.logger.Error(ctx, "update job failed", "job_id", job.ID, "error", err)
		return domain.Job{}, err
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, caller domain.Identity, jobID string) error {
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return err
	}
	if err := guardOwnership(caller, job.OwnerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, job.ID); err != nil {
		s.logger.Error(ctx, "delete job failed", "job_id", job.ID, "error", err)
		return err
	}
	return nil
}
