package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/applyflow/applyflow/internal/store/model"
)

type Job interface {
	Create(ctx context.Context, posting model.JobPosting) (*model.JobPosting, error)
	Get(ctx context.Context, id uuid.UUID) (*model.JobPosting, error)
	List(ctx context.Context) (model.JobPostingList, error)
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to the Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (s *JobStore) Create(ctx context.Context, posting model.JobPosting) (*model.JobPosting, error) {
	if posting.ID == uuid.Nil {
		posting.ID = uuid.New()
	}
	if err := s.getDB(ctx).WithContext(ctx).Create(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &posting, nil
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*model.JobPosting, error) {
	posting := model.JobPosting{ID: id}
	if err := s.getDB(ctx).WithContext(ctx).First(&posting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &posting, nil
}

func (s *JobStore) List(ctx context.Context) (model.JobPostingList, error) {
	var postings model.JobPostingList
	if err := s.getDB(ctx).WithContext(ctx).Model(&postings).Order("created_at").Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (s *JobStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}
