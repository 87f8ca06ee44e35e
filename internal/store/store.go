package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/applyflow/applyflow/internal/store/model"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Job() Job
	Application() Application
	Review() Review
	Stats(ctx context.Context) (model.ReviewStats, error)
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db          *gorm.DB
	job         Job
	application Application
	review      Review
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:          db,
		job:         NewJobStore(db),
		application: NewApplicationStore(db),
		review:      NewReviewStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) Application() Application {
	return s.application
}

func (s *DataStore) Review() Review {
	return s.review
}

// Stats scans the application and review stores once each and aggregates the
// dashboard counters.
func (s *DataStore) Stats(ctx context.Context) (model.ReviewStats, error) {
	applications, err := s.Application().List(ctx, NewApplicationQueryFilter())
	if err != nil {
		return model.ReviewStats{}, err
	}
	reviews, err := s.Review().List(ctx)
	if err != nil {
		return model.ReviewStats{}, err
	}
	return model.NewReviewStats(applications, reviews), nil
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.JobPosting{},
		&model.Application{},
		&model.ReviewOutcome{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
