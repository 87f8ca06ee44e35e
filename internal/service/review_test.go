package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/service"
	"github.com/applyflow/applyflow/internal/store"
	"github.com/applyflow/applyflow/internal/store/model"
)

var _ = Describe("review service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.ReviewService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())

		srv = service.NewReviewService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from applications;")
		gormdb.Exec("DELETE from review_outcomes;")
	})

	newApplication := func() *model.Application {
		application, err := s.Application().Create(context.TODO(), model.Application{
			ApplicantID: "applicant-1",
			JobID:       uuid.New(),
			ResumeText:  "resume",
		})
		Expect(err).To(BeNil())
		return application
	}

	aiScreen := func(application *model.Application) {
		_, err := s.Review().Replace(context.TODO(), model.ReviewOutcome{
			ApplicationID:   application.ID,
			ApplicantID:     application.ApplicantID,
			JobID:           application.JobID,
			ReviewType:      model.ReviewTypeAIScreen,
			Decision:        model.DecisionHumanReviewRequested,
			ReviewTimestamp: time.Now().UTC(),
			ReasoningLog:    "borderline experience",
		})
		Expect(err).To(BeNil())
	}

	Context("finalize", func() {
		It("rejects a missing decision before touching the store", func() {
			application := newApplication()

			_, err := srv.Finalize(context.TODO(), service.FinalizeForm{
				ApplicationID: application.ID,
				ReviewerID:    "hr-17",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from review_outcomes;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("rejects a missing reviewer id", func() {
			application := newApplication()

			_, err := srv.Finalize(context.TODO(), service.FinalizeForm{
				ApplicationID: application.ID,
				Decision:      model.DecisionQualified,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidRequest{}))
		})

		It("reports a missing application", func() {
			_, err := srv.Finalize(context.TODO(), service.FinalizeForm{
				ApplicationID: uuid.New(),
				Decision:      model.DecisionQualified,
				ReviewerID:    "hr-17",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})

		It("records a decision when no outcome exists yet", func() {
			application := newApplication()

			outcome, err := srv.Finalize(context.TODO(), service.FinalizeForm{
				ApplicationID: application.ID,
				Decision:      model.DecisionNotQualified,
				ReviewerID:    "hr-17",
				ReasoningLog:  "missing the required certification",
			})
			Expect(err).To(BeNil())
			Expect(outcome.ReviewType).To(Equal(model.ReviewTypeHuman))
			Expect(outcome.Decision).To(Equal(model.DecisionNotQualified))
			Expect(*outcome.ReviewerID).To(Equal("hr-17"))
			Expect(outcome.IsFinalDecision).To(BeTrue())

			got, err := s.Application().Get(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(Equal(model.ApplicationStatusReviewed))
		})

		It("keeps the AI reasoning when the reviewer leaves no note", func() {
			application := newApplication()
			aiScreen(application)

			outcome, err := srv.Finalize(context.TODO(), service.FinalizeForm{
				ApplicationID: application.ID,
				Decision:      model.DecisionQualified,
				ReviewerID:    "hr-17",
			})
			Expect(err).To(BeNil())
			Expect(outcome.Decision).To(Equal(model.DecisionQualified))
			Expect(outcome.ReviewType).To(Equal(model.ReviewTypeHuman))
			Expect(outcome.ReasoningLog).To(Equal("borderline experience"))
		})

		It("overwrites the reasoning when the reviewer provides one", func() {
			application := newApplication()
			aiScreen(application)

			outcome, err := srv.Finalize(context.TODO(), service.FinalizeForm{
				ApplicationID: application.ID,
				Decision:      model.DecisionQualified,
				ReviewerID:    "hr-17",
				ReasoningLog:  "verified the experience by phone",
			})
			Expect(err).To(BeNil())
			Expect(outcome.ReasoningLog).To(Equal("verified the experience by phone"))
		})

		It("overrides a claim held by the screening pass", func() {
			application := newApplication()
			token := uuid.New()
			claimed, err := s.Application().Claim(context.TODO(), application.ID, token)
			Expect(err).To(BeNil())
			Expect(claimed).To(BeTrue())

			_, err = srv.Finalize(context.TODO(), service.FinalizeForm{
				ApplicationID: application.ID,
				Decision:      model.DecisionQualified,
				ReviewerID:    "hr-17",
			})
			Expect(err).To(BeNil())

			got, err := s.Application().Get(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(Equal(model.ApplicationStatusReviewed))
			Expect(got.ClaimToken).To(BeNil())
		})

		It("is idempotent", func() {
			application := newApplication()

			for i := 0; i < 2; i++ {
				_, err := srv.Finalize(context.TODO(), service.FinalizeForm{
					ApplicationID: application.ID,
					Decision:      model.DecisionQualified,
					ReviewerID:    "hr-17",
				})
				Expect(err).To(BeNil())
			}

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from review_outcomes;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})
	})

	Context("quick confirm", func() {
		It("records a qualified decision under the dashboard identity", func() {
			application := newApplication()

			outcome, err := srv.QuickConfirm(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(outcome.Decision).To(Equal(model.DecisionQualified))
			Expect(*outcome.ReviewerID).To(Equal(service.QuickConfirmReviewerID))
			Expect(outcome.ReasoningLog).To(Equal("Quick confirmed via dashboard"))
			Expect(outcome.IsFinalDecision).To(BeTrue())
		})
	})
})
