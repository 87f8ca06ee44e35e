package store_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/store"
	"github.com/applyflow/applyflow/internal/store/model"
)

var _ = Describe("application store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from applications;")
	})

	newApplication := func(status model.ApplicationStatus) *model.Application {
		application, err := s.Application().Create(context.TODO(), model.Application{
			ApplicantID: "applicant-1",
			JobID:       uuid.New(),
			ResumeText:  "resume",
			Status:      status,
		})
		Expect(err).To(BeNil())
		return application
	}

	Context("create and get", func() {
		It("assigns an id and the unreviewed state", func() {
			application, err := s.Application().Create(context.TODO(), model.Application{
				ApplicantID: "applicant-1",
				JobID:       uuid.New(),
			})
			Expect(err).To(BeNil())
			Expect(application.ID).ToNot(Equal(uuid.Nil))
			Expect(application.Status).To(Equal(model.ApplicationStatusUnreviewed))

			got, err := s.Application().Get(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(got.ApplicantID).To(Equal("applicant-1"))
		})

		It("reports a missing record", func() {
			_, err := s.Application().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		It("filters by status", func() {
			newApplication(model.ApplicationStatusUnreviewed)
			newApplication(model.ApplicationStatusUnreviewed)
			newApplication(model.ApplicationStatusReviewed)

			pending, err := s.Application().List(context.TODO(),
				store.NewApplicationQueryFilter().ByStatus(model.ApplicationStatusUnreviewed))
			Expect(err).To(BeNil())
			Expect(pending).To(HaveLen(2))

			all, err := s.Application().List(context.TODO(), store.NewApplicationQueryFilter())
			Expect(err).To(BeNil())
			Expect(all).To(HaveLen(3))
		})

		It("filters by job", func() {
			application := newApplication(model.ApplicationStatusUnreviewed)
			newApplication(model.ApplicationStatusUnreviewed)

			byJob, err := s.Application().List(context.TODO(),
				store.NewApplicationQueryFilter().ByJobID(application.JobID))
			Expect(err).To(BeNil())
			Expect(byJob).To(HaveLen(1))
			Expect(byJob[0].ID).To(Equal(application.ID))
		})
	})

	Context("claim", func() {
		It("claims an unreviewed application exactly once", func() {
			application := newApplication(model.ApplicationStatusUnreviewed)

			claimed, err := s.Application().Claim(context.TODO(), application.ID, uuid.New())
			Expect(err).To(BeNil())
			Expect(claimed).To(BeTrue())

			claimed, err = s.Application().Claim(context.TODO(), application.ID, uuid.New())
			Expect(err).To(BeNil())
			Expect(claimed).To(BeFalse())
		})

		It("does not claim a reviewed application", func() {
			application := newApplication(model.ApplicationStatusReviewed)

			claimed, err := s.Application().Claim(context.TODO(), application.ID, uuid.New())
			Expect(err).To(BeNil())
			Expect(claimed).To(BeFalse())
		})

		It("releases a claim back to unreviewed", func() {
			application := newApplication(model.ApplicationStatusUnreviewed)
			token := uuid.New()

			claimed, err := s.Application().Claim(context.TODO(), application.ID, token)
			Expect(err).To(BeNil())
			Expect(claimed).To(BeTrue())

			Expect(s.Application().ReleaseClaim(context.TODO(), application.ID, token)).To(Succeed())

			got, err := s.Application().Get(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(Equal(model.ApplicationStatusUnreviewed))
			Expect(got.ClaimToken).To(BeNil())
		})

		It("refuses to release with the wrong token", func() {
			application := newApplication(model.ApplicationStatusUnreviewed)

			claimed, err := s.Application().Claim(context.TODO(), application.ID, uuid.New())
			Expect(err).To(BeNil())
			Expect(claimed).To(BeTrue())

			err = s.Application().ReleaseClaim(context.TODO(), application.ID, uuid.New())
			Expect(err).To(MatchError(store.ErrClaimLost))
		})
	})

	Context("mark reviewed", func() {
		It("finishes a claimed application with its token", func() {
			application := newApplication(model.ApplicationStatusUnreviewed)
			token := uuid.New()

			claimed, err := s.Application().Claim(context.TODO(), application.ID, token)
			Expect(err).To(BeNil())
			Expect(claimed).To(BeTrue())

			Expect(s.Application().MarkReviewed(context.TODO(), application.ID, &token)).To(Succeed())

			got, err := s.Application().Get(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(Equal(model.ApplicationStatusReviewed))
			Expect(got.ClaimToken).To(BeNil())
		})

		It("reports a lost claim when the token no longer matches", func() {
			application := newApplication(model.ApplicationStatusUnreviewed)
			token := uuid.New()

			claimed, err := s.Application().Claim(context.TODO(), application.ID, token)
			Expect(err).To(BeNil())
			Expect(claimed).To(BeTrue())

			// finalize overtakes the claim
			Expect(s.Application().MarkReviewed(context.TODO(), application.ID, nil)).To(Succeed())

			err = s.Application().MarkReviewed(context.TODO(), application.ID, &token)
			Expect(err).To(MatchError(store.ErrClaimLost))
		})

		It("marks any application reviewed without a token", func() {
			application := newApplication(model.ApplicationStatusUnreviewed)

			Expect(s.Application().MarkReviewed(context.TODO(), application.ID, nil)).To(Succeed())
			// idempotent
			Expect(s.Application().MarkReviewed(context.TODO(), application.ID, nil)).To(Succeed())

			got, err := s.Application().Get(context.TODO(), application.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(Equal(model.ApplicationStatusReviewed))
		})

		It("reports a missing record without a token", func() {
			err := s.Application().MarkReviewed(context.TODO(), uuid.New(), nil)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
