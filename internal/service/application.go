package service

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/applyflow/applyflow/internal/extract"
	"github.com/applyflow/applyflow/internal/store"
	"github.com/applyflow/applyflow/internal/store/model"
	"github.com/applyflow/applyflow/pkg/metrics"
)

// Upload is an in-memory copy of a submitted document. Any temporary file
// backing it belongs to the HTTP layer and is removed there on both the
// success and the failure path.
type Upload struct {
	Filename string
	Data     []byte
}

type SubmissionForm struct {
	JobID          uuid.UUID
	ApplicantID    string
	Question1      string
	Question2      string
	Question3      string
	Resume         *Upload
	JobApplication *Upload
}

type ApplicationService struct {
	store store.Store
}

func NewApplicationService(store store.Store) *ApplicationService {
	return &ApplicationService{store: store}
}

// SubmitApplication extracts the document text and creates the application
// in the needs-review state. The job id is deliberately not checked here; a
// dangling reference surfaces as a lookup failure at review time, matching
// the source system.
func (s *ApplicationService) SubmitApplication(ctx context.Context, form SubmissionForm) (*model.Application, error) {
	if form.ApplicantID == "" {
		return nil, NewErrMissingField("applicantId")
	}
	if form.JobID == uuid.Nil {
		return nil, NewErrMissingField("jobId")
	}
	if form.Resume == nil {
		return nil, NewErrMissingField("resume")
	}

	resumeText, err := extractUpload(form.Resume)
	if err != nil {
		return nil, err
	}

	jobApplicationText := model.NoResumeUploaded
	if form.JobApplication != nil {
		if jobApplicationText, err = extractUpload(form.JobApplication); err != nil {
			return nil, err
		}
	}

	application := model.Application{
		ApplicantID:        form.ApplicantID,
		JobID:              form.JobID,
		SubmissionDate:     time.Now().UTC().Truncate(time.Second),
		Question1:          form.Question1,
		Question2:          form.Question2,
		Question3:          form.Question3,
		ResumeText:         resumeText,
		JobApplicationText: jobApplicationText,
		Status:             model.ApplicationStatusUnreviewed,
	}

	result, err := s.store.Application().Create(ctx, application)
	if err != nil {
		return nil, err
	}

	metrics.IncreaseSubmissionsTotalMetric()
	return result, nil
}

func (s *ApplicationService) GetApplication(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application, err := s.store.Application().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(id)
		}
		return nil, err
	}
	return application, nil
}

func (s *ApplicationService) ListApplications(ctx context.Context) (model.ApplicationList, error) {
	return s.store.Application().List(ctx, store.NewApplicationQueryFilter())
}

func extractUpload(upload *Upload) (string, error) {
	text, err := extract.Text(upload.Data, filepath.Ext(upload.Filename))
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFileType) {
			return "", NewErrInvalidRequest(err.Error())
		}
		return "", NewErrFileCorrupted(err.Error())
	}
	return text, nil
}
