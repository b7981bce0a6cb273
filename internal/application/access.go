package application

import (
	"context"

	"github.com/google/uuid"
	"jobtracker/internal/domain"
)

// loadJob resolves a path identifier to a concrete record. A syntactically
// unaddressable id and a truly absent id both surface as ErrNotFound; the
// distinction only shows up in the debug log.
func (s *JobService) loadJob(ctx context.Context, jobID string) (domain.Job, error) {
	if err := uuid.Validate(jobID); err != nil {
		s.logger.Debug(ctx, "job id is not addressable", "job_id", jobID, "error", err)
		return domain.Job{}, domain.ErrNotFound
	}
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

// guardOwnership admits only the record owner. Administrators get no
// override on job records; the user resource handles admins separately.
func guardOwnership(caller domain.Identity, ownerID string) error {
	if caller.ID == "" {
		return domain.ErrUnauthenticated
	}
	if caller.ID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
