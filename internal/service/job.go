package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/applyflow/applyflow/internal/store"
	"github.com/applyflow/applyflow/internal/store/model"
)

type JobService struct {
	store store.Store
}

func NewJobService(store store.Store) *JobService {
	return &JobService{store: store}
}

// CreateJobs ingests a batch of postings. Postings are immutable afterwards
// from the pipeline's perspective.
func (s *JobService) CreateJobs(ctx context.Context, postings []model.JobPosting) ([]model.JobPosting, error) {
	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	created := make([]model.JobPosting, 0, len(postings))
	for _, posting := range postings {
		result, err := s.store.Job().Create(ctx, posting)
		if err != nil {
			_, _ = store.Rollback(ctx)
			return nil, err
		}
		created = append(created, *result)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*model.JobPosting, error) {
	posting, err := s.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, err
	}
	return posting, nil
}

func (s *JobService) ListJobs(ctx context.Context) (model.JobPostingList, error) {
	return s.store.Job().List(ctx)
}
