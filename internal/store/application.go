package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/applyflow/applyflow/internal/store/model"
)

type Application interface {
	Create(ctx context.Context, application model.Application) (*model.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Application, error)
	List(ctx context.Context, filter *ApplicationQueryFilter) (model.ApplicationList, error)
	Claim(ctx context.Context, id uuid.UUID, token uuid.UUID) (bool, error)
	ReleaseClaim(ctx context.Context, id uuid.UUID, token uuid.UUID) error
	MarkReviewed(ctx context.Context, id uuid.UUID, token *uuid.UUID) error
}

type ApplicationQueryFilter BaseQuerier

func NewApplicationQueryFilter() *ApplicationQueryFilter {
	return &ApplicationQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *ApplicationQueryFilter) ByStatus(status model.ApplicationStatus) *ApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

func (qf *ApplicationQueryFilter) ByJobID(jobID uuid.UUID) *ApplicationQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("job_id = ?", jobID)
	})
	return qf
}

type ApplicationStore struct {
	db *gorm.DB
}

// Make sure we conform to the Application interface
var _ Application = (*ApplicationStore)(nil)

func NewApplicationStore(db *gorm.DB) Application {
	return &ApplicationStore{db: db}
}

func (s *ApplicationStore) Create(ctx context.Context, application model.Application) (*model.Application, error) {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	if application.Status == "" {
		application.Status = model.ApplicationStatusUnreviewed
	}
	if err := s.getDB(ctx).WithContext(ctx).Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return &application, nil
}

func (s *ApplicationStore) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application := model.Application{ID: id}
	if err := s.getDB(ctx).WithContext(ctx).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (s *ApplicationStore) List(ctx context.Context, filter *ApplicationQueryFilter) (model.ApplicationList, error) {
	var applications model.ApplicationList
	tx := s.getDB(ctx).WithContext(ctx).Model(&applications)
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if err := tx.Order("submission_date").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// Claim performs the unreviewed -> claimed transition with a fresh claim
// token. It reports false when another worker already holds the record, so
// overlapping scheduler ticks cannot process the same application twice.
func (s *ApplicationStore) Claim(ctx context.Context, id uuid.UUID, token uuid.UUID) (bool, error) {
	now := time.Now()
	result := s.getDB(ctx).WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ? AND status = ?", id, model.ApplicationStatusUnreviewed).
		Updates(map[string]any{
			"status":      model.ApplicationStatusClaimed,
			"claim_token": token,
			"claimed_at":  now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ReleaseClaim puts a failed record back to unreviewed so the next tick
// retries it. A mismatched token means the claim was taken over; that is
// reported as ErrClaimLost.
func (s *ApplicationStore) ReleaseClaim(ctx context.Context, id uuid.UUID, token uuid.UUID) error {
	result := s.getDB(ctx).WithContext(ctx).
		Model(&model.Application{}).
		Where("id = ? AND status = ? AND claim_token = ?", id, model.ApplicationStatusClaimed, token).
		Updates(map[string]any{
			"status":      model.ApplicationStatusUnreviewed,
			"claim_token": nil,
			"claimed_at":  nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClaimLost
	}
	return nil
}

// MarkReviewed finishes the state machine. With a token the transition is
// claimed -> reviewed and token-checked (AI path); without one the record is
// set to reviewed unconditionally and any claim is cleared (finalize path,
// idempotent).
func (s *ApplicationStore) MarkReviewed(ctx context.Context, id uuid.UUID, token *uuid.UUID) error {
	tx := s.getDB(ctx).WithContext(ctx).Model(&model.Application{})
	if token != nil {
		tx = tx.Where("id = ? AND status = ? AND claim_token = ?", id, model.ApplicationStatusClaimed, *token)
	} else {
		tx = tx.Where("id = ?", id)
	}
	result := tx.Updates(map[string]any{
		"status":      model.ApplicationStatusReviewed,
		"claim_token": nil,
		"claimed_at":  nil,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if token != nil {
			return ErrClaimLost
		}
		return ErrRecordNotFound
	}
	return nil
}

func (s *ApplicationStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}
