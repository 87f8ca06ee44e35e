// Package scheduler runs the periodic AI screening pass over submitted
// applications.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"

	"github.com/applyflow/applyflow/internal/genai"
	"github.com/applyflow/applyflow/internal/store"
	"github.com/applyflow/applyflow/internal/store/model"
	"github.com/applyflow/applyflow/pkg/metrics"
)

const redactionNotice = "Review the following applicant's application and provide a decision based on the qualifications provided. NOTE: name and any personal information was redacted"

// ReviewGenerator is the slice of the genai client the scheduler needs.
type ReviewGenerator interface {
	GenerateReview(ctx context.Context, segments []string) (*genai.ReviewResult, error)
}

type Scheduler struct {
	store     store.Store
	generator ReviewGenerator
	interval  time.Duration
}

func New(store store.Store, generator ReviewGenerator, interval time.Duration) *Scheduler {
	return &Scheduler{store: store, generator: generator, interval: interval}
}

// Run ticks on a jittered fixed interval until the context is cancelled.
// There is no queue: every tick re-scans the store for records that still
// need review. The claim transition keeps overlapping ticks from picking up
// the same record twice.
func (s *Scheduler) Run(ctx context.Context) {
	zap.S().Named("scheduler").Infof("starting review scheduler, interval %s", s.interval)
	defer zap.S().Named("scheduler").Info("review scheduler stopped")

	ticker := jitterbug.New(s.interval, &jitterbug.Norm{Stdev: 30 * time.Millisecond, Mean: 0})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick screens every application still in the unreviewed state. Records are
// claimed first and then processed concurrently; one record's failure never
// aborts the others. Failed records are released back to unreviewed and
// retried on a later tick.
func (s *Scheduler) Tick(ctx context.Context) {
	applications, err := s.store.Application().List(ctx,
		store.NewApplicationQueryFilter().ByStatus(model.ApplicationStatusUnreviewed))
	if err != nil {
		zap.S().Named("scheduler").Errorw("failed to list unreviewed applications", "error", err)
		return
	}
	if len(applications) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, application := range applications {
		token := uuid.New()
		claimed, err := s.store.Application().Claim(ctx, application.ID, token)
		if err != nil {
			zap.S().Named("scheduler").Errorw("failed to claim application", "application_id", application.ID, "error", err)
			continue
		}
		if !claimed {
			// another tick or a finalize got here first
			continue
		}

		wg.Add(1)
		go func(application model.Application, token uuid.UUID) {
			defer wg.Done()
			if err := s.review(ctx, application, token); err != nil {
				zap.S().Named("scheduler").Errorw("screening failed",
					"application_id", application.ID,
					"job_id", application.JobID,
					"error", err)
				if rerr := s.store.Application().ReleaseClaim(ctx, application.ID, token); rerr != nil {
					zap.S().Named("scheduler").Errorw("failed to release claim", "application_id", application.ID, "error", rerr)
				}
			}
		}(application, token)
	}
	wg.Wait()
}

// review runs one application through the AI reviewer and writes the
// outcome. The model output is taken as-is except for the bookkeeping
// fields, which are stamped here rather than trusted from the model.
func (s *Scheduler) review(ctx context.Context, application model.Application, token uuid.UUID) error {
	posting, err := s.store.Job().Get(ctx, application.JobID)
	if err != nil {
		metrics.IncreaseAIReviewFailuresTotalMetric("job_lookup")
		return err
	}

	result, err := s.generator.GenerateReview(ctx, buildPrompt(application, *posting))
	if err != nil {
		metrics.IncreaseAIReviewFailuresTotalMetric("generation")
		return err
	}

	outcome := model.ReviewOutcome{
		ApplicationID:   application.ID,
		ApplicantID:     application.ApplicantID,
		JobID:           application.JobID,
		ReviewType:      model.ReviewTypeAIScreen,
		Decision:        result.Decision,
		ReviewTimestamp: time.Now().UTC(),
		ReviewerID:      nil,
		ReasoningLog:    result.ReasoningLog,
		IsFinalDecision: result.IsFinalDecision,
	}

	if _, err := s.store.Review().Replace(ctx, outcome); err != nil {
		metrics.IncreaseAIReviewFailuresTotalMetric("store")
		return err
	}

	if err := s.store.Application().MarkReviewed(ctx, application.ID, &token); err != nil {
		// a finalize overtook the claim; its decision stands
		if err == store.ErrClaimLost {
			zap.S().Named("scheduler").Infow("claim lost to a concurrent writer", "application_id", application.ID)
			return nil
		}
		metrics.IncreaseAIReviewFailuresTotalMetric("store")
		return err
	}

	metrics.IncreaseAIReviewsTotalMetric(result.Decision)
	return nil
}

// buildPrompt assembles the ordered prompt segments: the redaction notice,
// the application content and the posting's requirements.
func buildPrompt(application model.Application, posting model.JobPosting) []string {
	return []string{
		redactionNotice,
		application.String(),
		"Also consider the job posting details: ",
		posting.String(),
	}
}
