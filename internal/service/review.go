package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/applyflow/applyflow/internal/store"
	"github.com/applyflow/applyflow/internal/store/model"
)

// QuickConfirmReviewerID is the sentinel identity used by the dashboard's
// one-click confirm.
const QuickConfirmReviewerID = "quick-confirm"

const quickConfirmReasoning = "Quick confirmed via dashboard"

type FinalizeForm struct {
	ApplicationID uuid.UUID
	Decision      string
	ReviewerID    string
	ReasoningLog  string
}

type ReviewService struct {
	store store.Store
}

func NewReviewService(store store.Store) *ReviewService {
	return &ReviewService{store: store}
}

// Finalize records a human decision for an application. The outcome slot is
// merged field by field: an absent reasoning note keeps whatever the AI
// reviewer logged before, while the decision itself always wins. The
// application ends up reviewed either way, so finalizing twice is harmless.
func (s *ReviewService) Finalize(ctx context.Context, form FinalizeForm) (*model.ReviewOutcome, error) {
	if form.Decision == "" {
		return nil, NewErrMissingField("decision")
	}
	if form.ReviewerID == "" {
		return nil, NewErrMissingField("reviewerId")
	}

	application, err := s.store.Application().Get(ctx, form.ApplicationID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(form.ApplicationID)
		}
		return nil, err
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	reviewerID := form.ReviewerID
	outcome := model.ReviewOutcome{
		ApplicationID:   application.ID,
		ApplicantID:     application.ApplicantID,
		JobID:           application.JobID,
		ReviewType:      model.ReviewTypeHuman,
		Decision:        form.Decision,
		ReviewTimestamp: time.Now().UTC(),
		ReviewerID:      &reviewerID,
		ReasoningLog:    form.ReasoningLog,
		IsFinalDecision: true,
	}

	columns := []string{
		"applicant_id", "job_id", "review_type", "decision",
		"review_timestamp", "reviewer_id", "is_final_decision",
	}
	if form.ReasoningLog != "" {
		columns = append(columns, "reasoning_log")
	}

	merged, err := s.store.Review().Merge(ctx, outcome, columns...)
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if err := s.store.Application().MarkReviewed(ctx, application.ID, nil); err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}
	return merged, nil
}

// QuickConfirm is Finalize with a fixed Qualified decision and the sentinel
// reviewer identity. Same code path, fewer knobs.
func (s *ReviewService) QuickConfirm(ctx context.Context, applicationID uuid.UUID) (*model.ReviewOutcome, error) {
	return s.Finalize(ctx, FinalizeForm{
		ApplicationID: applicationID,
		Decision:      model.DecisionQualified,
		ReviewerID:    QuickConfirmReviewerID,
		ReasoningLog:  quickConfirmReasoning,
	})
}

func (s *ReviewService) ListReviews(ctx context.Context) (model.ReviewOutcomeList, error) {
	return s.store.Review().List(ctx)
}

func (s *ReviewService) Stats(ctx context.Context) (model.ReviewStats, error) {
	return s.store.Stats(ctx)
}
