package application

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"jobtracker/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(context.Context, string, ...any)  {}
func (noopLogger) Error(context.Context, string, ...any) {}
func (noopLogger) Warn(context.Context, string, ...any)  {}
func (noopLogger) Debug(context.Context, string, ...any) {}

type jobRepoMock struct{ mock.Mock }

func (m *jobRepoMock) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(domain.Job), args.Error(1)
}

func (m *jobRepoMock) GetByID(ctx context.Context, jobID string) (domain.Job, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(domain.Job), args.Error(1)
}

func (m *jobRepoMock) ListByOwner(ctx context.Context, ownerID string) ([]domain.Job, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *jobRepoMock) Update(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *jobRepoMock) Delete(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

var (
	alice = domain.Identity{ID: uuid.NewString(), Role: domain.RoleUser}
	bob   = domain.Identity{ID: uuid.NewString(), Role: domain.RoleUser}
	admin = domain.Identity{ID: uuid.NewString(), Role: domain.RoleAdmin}
)

func withID(job domain.Job) domain.Job {
	job.ID = uuid.NewString()
	return job
}

func TestJobService_CreateBindsOwnerAndDefaults(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(job domain.Job) bool {
		return job.OwnerID == alice.ID &&
			job.Status == domain.StatusApplied &&
			!job.AppliedDate.IsZero() &&
			!job.CreatedAt.IsZero() &&
			!job.UpdatedAt.IsZero()
	})).Return(withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer", Status: domain.StatusApplied}), nil)

	job, err := svc.Create(context.Background(), alice, JobInput{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, job.OwnerID)
	assert.Equal(t, domain.StatusApplied, job.Status)
	assert.NotEmpty(t, job.ID)
	repo.AssertExpectations(t)
}

func TestJobService_CreateRequiresCompanyAndRole(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})

	_, err := svc.Create(context.Background(), alice, JobInput{Company: "  ", Role: "Engineer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(context.Background(), alice, JobInput{Company: "Acme", Role: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJobService_CreateRejectsUnknownStatus(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})

	_, err := svc.Create(context.Background(), alice, JobInput{Company: "Acme", Role: "Engineer", Status: "Bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJobService_CreateRequiresIdentity(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})

	_, err := svc.Create(context.Background(), domain.Identity{}, JobInput{Company: "Acme", Role: "Engineer"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJobService_GetDeniesNonOwner(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	job := withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer"})
	repo.On("GetByID", mock.Anything, job.ID).Return(job, nil)

	_, err := svc.Get(context.Background(), bob, job.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestJobService_GetAdminHasNoOverride(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	job := withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer"})
	repo.On("GetByID", mock.Anything, job.ID).Return(job, nil)

	_, err := svc.Get(context.Background(), admin, job.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestJobService_GetAllowsOwner(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	job := withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer"})
	repo.On("GetByID", mock.Anything, job.ID).Return(job, nil)

	got, err := svc.Get(context.Background(), alice, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job, got)
}

func TestJobService_GetMalformedIDIsNotFound(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})

	_, err := svc.Get(context.Background(), alice, "not-a-valid-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestJobService_GetAbsentIDIsNotFound(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	jobID := uuid.NewString()
	repo.On("GetByID", mock.Anything, jobID).Return(domain.Job{}, domain.ErrNotFound)

	_, err := svc.Get(context.Background(), alice, jobID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobService_UpdateMergesAllowedFieldsOnly(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	createdAt := time.Now().UTC().Add(-24 * time.Hour)
	job := withID(domain.Job{
		OwnerID:     alice.ID,
		Company:     "Acme",
		Role:        "Engineer",
		Status:      domain.StatusApplied,
		AppliedDate: createdAt,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	repo.On("GetByID", mock.Anything, job.ID).Return(job, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(updated domain.Job) bool {
		return updated.ID == job.ID &&
			updated.OwnerID == alice.ID &&
			updated.CreatedAt.Equal(createdAt) &&
			updated.Company == "Globex" &&
			updated.Status == domain.StatusInterviewing &&
			updated.UpdatedAt.After(createdAt)
	})).Return(nil)

	company := "Globex"
	status := "Interviewing"
	updated, err := svc.Update(context.Background(), alice, job.ID, JobPatch{Company: &company, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.Company)
	assert.Equal(t, "Engineer", updated.Role)
	assert.Equal(t, alice.ID, updated.OwnerID)
	repo.AssertExpectations(t)
}

func TestJobService_UpdateDeniesNonOwner(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	job := withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer"})
	repo.On("GetByID", mock.Anything, job.ID).Return(job, nil)

	company := "Globex"
	_, err := svc.Update(context.Background(), bob, job.ID, JobPatch{Company: &company})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestJobService_UpdateRejectsUnknownStatusWithoutWrite(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	job := withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer", Status: domain.StatusApplied})
	repo.On("GetByID", mock.Anything, job.ID).Return(job, nil)

	status := "Bogus"
	_, err := svc.Update(context.Background(), alice, job.ID, JobPatch{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestJobService_DeleteDeniesNonOwner(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	job := withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer"})
	repo.On("GetByID", mock.Anything, job.ID).Return(job, nil)

	err := svc.Delete(context.Background(), bob, job.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestJobService_DeleteTwiceIsNotFound(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	job := withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer"})

	repo.On("GetByID", mock.Anything, job.ID).Return(job, nil).Once()
	repo.On("Delete", mock.Anything, job.ID).Return(nil).Once()
	require.NoError(t, svc.Delete(context.Background(), alice, job.ID))

	repo.On("GetByID", mock.Anything, job.ID).Return(domain.Job{}, domain.ErrNotFound).Once()
	err := svc.Delete(context.Background(), alice, job.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobService_ListScopedToCaller(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})
	owned := []domain.Job{
		withID(domain.Job{OwnerID: alice.ID, Company: "Acme", Role: "Engineer"}),
		withID(domain.Job{OwnerID: alice.ID, Company: "Globex", Role: "SRE"}),
	}
	repo.On("ListByOwner", mock.Anything, alice.ID).Return(owned, nil)

	jobs, err := svc.ListByOwner(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, owned, jobs)
	for _, job := range jobs {
		assert.Equal(t, alice.ID, job.OwnerID)
	}
}

func TestJobService_ListRequiresIdentity(t *testing.T) {
	repo := new(jobRepoMock)
	svc := NewJobService(repo, noopLogger{})

	_, err := svc.ListByOwner(context.Background(), domain.Identity{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	repo.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
}

// fakeJobRepo is an in-memory JobRepository used for the end-to-end scenario
// and the listing-order property.
type fakeJobRepo struct {
	jobs map[string]domain.Job
}

func newFakeJobRepo() *fakeJobRepo { return &fakeJobRepo{jobs: map[string]domain.Job{}} }

func (f *fakeJobRepo) Create(_ context.Context, job domain.Job) (domain.Job, error) {
	job.ID = uuid.NewString()
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, jobID string) (domain.Job, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return domain.Job{}, domain.ErrNotFound
	}
	return job, nil
}

func (f *fakeJobRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Job, error) {
	var out []domain.Job
	for _, job := range f.jobs {
		if job.OwnerID == ownerID {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedDate.After(out[j].AppliedDate) })
	return out, nil
}

func (f *fakeJobRepo) Update(_ context.Context, job domain.Job) error {
	if _, ok := f.jobs[job.ID]; !ok {
		return domain.ErrNotFound
	}
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) Delete(_ context.Context, jobID string) error {
	if _, ok := f.jobs[jobID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.jobs, jobID)
	return nil
}

func TestJobService_Scenario(t *testing.T) {
	svc := NewJobService(newFakeJobRepo(), noopLogger{})
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, JobInput{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApplied, created.Status)
	assert.Equal(t, alice.ID, created.OwnerID)

	_, err = svc.Get(ctx, bob, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Company, got.Company)
	assert.Equal(t, created.Role, got.Role)

	require.NoError(t, svc.Delete(ctx, alice, created.ID))

	_, err = svc.Get(ctx, alice, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobService_ListOrderAndIsolation(t *testing.T) {
	repo := newFakeJobRepo()
	svc := NewJobService(repo, noopLogger{})
	ctx := context.Background()

	base := time.Now().UTC().Add(-72 * time.Hour)
	for i, company := range []string{"First", "Second", "Third"} {
		applied := base.Add(time.Duration(i) * time.Hour)
		_, err := svc.Create(ctx, alice, JobInput{Company: company, Role: "Engineer", AppliedDate: &applied})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, bob, JobInput{Company: "Other", Role: "Analyst"})
	require.NoError(t, err)

	jobs, err := svc.ListByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "Third", jobs[0].Company)
	assert.Equal(t, "Second", jobs[1].Company)
	assert.Equal(t, "First", jobs[2].Company)
	for _, job := range jobs {
		assert.NotEqual(t, bob.ID, job.OwnerID)
	}
}
