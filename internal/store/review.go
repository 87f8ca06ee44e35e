package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/applyflow/applyflow/internal/store/model"
)

type Review interface {
	Get(ctx context.Context, applicationID uuid.UUID) (*model.ReviewOutcome, error)
	List(ctx context.Context) (model.ReviewOutcomeList, error)
	Replace(ctx context.Context, outcome model.ReviewOutcome) (*model.ReviewOutcome, error)
	Merge(ctx context.Context, outcome model.ReviewOutcome, columns ...string) (*model.ReviewOutcome, error)
}

type ReviewStore struct {
	db *gorm.DB
}

// Make sure we conform to the Review interface
var _ Review = (*ReviewStore)(nil)

func NewReviewStore(db *gorm.DB) Review {
	return &ReviewStore{db: db}
}

func (s *ReviewStore) Get(ctx context.Context, applicationID uuid.UUID) (*model.ReviewOutcome, error) {
	outcome := model.ReviewOutcome{ApplicationID: applicationID}
	if err := s.getDB(ctx).WithContext(ctx).First(&outcome).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &outcome, nil
}

func (s *ReviewStore) List(ctx context.Context) (model.ReviewOutcomeList, error) {
	var outcomes model.ReviewOutcomeList
	if err := s.getDB(ctx).WithContext(ctx).Model(&outcomes).Order("review_timestamp").Find(&outcomes).Error; err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Replace upserts the outcome slot with the full document, dropping whatever
// was stored before. The AI screening path writes this way; last write wins.
func (s *ReviewStore) Replace(ctx context.Context, outcome model.ReviewOutcome) (*model.ReviewOutcome, error) {
	err := s.getDB(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}},
			UpdateAll: true,
		}).
		Create(&outcome).Error
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// Merge upserts the outcome but only overwrites the given columns when a
// document already exists, leaving the rest of the stored fields in place.
// The finalize path uses this so an absent human note keeps the prior AI
// reasoning visible.
func (s *ReviewStore) Merge(ctx context.Context, outcome model.ReviewOutcome, columns ...string) (*model.ReviewOutcome, error) {
	err := s.getDB(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(&outcome).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, outcome.ApplicationID)
}

func (s *ReviewStore) getDB(ctx context.Context) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}
