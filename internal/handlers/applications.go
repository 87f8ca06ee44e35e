package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/applyflow/applyflow/internal/service"
)

// SubmitApplication accepts the multipart submission form. The resume file
// is required, the job application letter is optional. Uploads are spooled
// to a temporary file that is removed whether extraction succeeds or fails.
func (h *ServiceHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.cfg.Service.UploadMaxBytes); err != nil {
		renderBadRequest(w, r, "invalid multipart form")
		return
	}

	jobID, err := uuid.Parse(r.FormValue("jobId"))
	if err != nil {
		renderBadRequest(w, r, "invalid jobId")
		return
	}

	resume, err := h.readUpload(r, "resume")
	if err != nil {
		renderError(w, r, err)
		return
	}
	if resume == nil {
		renderBadRequest(w, r, "resume file is required")
		return
	}

	jobApplication, err := h.readUpload(r, "jobApplication")
	if err != nil {
		renderError(w, r, err)
		return
	}

	application, err := h.applicationSrv.SubmitApplication(r.Context(), service.SubmissionForm{
		JobID:          jobID,
		ApplicantID:    r.FormValue("applicantId"),
		Question1:      r.FormValue("question1"),
		Question2:      r.FormValue("question2"),
		Question3:      r.FormValue("question3"),
		Resume:         resume,
		JobApplication: jobApplication,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	_ = render.Render(w, r, SubmitReply{
		ApplicationID: application.ID.String(),
		Message:       "Application submitted successfully",
	})
}

// readUpload spools a multipart file to a temporary file and reads it back.
// The temporary file is always deleted before returning. A missing file is
// reported as (nil, nil) so callers decide whether the field was required.
func (h *ServiceHandler) readUpload(r *http.Request, field string) (*service.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, service.NewErrInvalidRequest("unreadable " + field + " upload")
	}
	defer file.Close()

	tmp, err := os.CreateTemp(h.cfg.Service.UploadDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		return nil, err
	}

	return &service.Upload{Filename: header.Filename, Data: data}, nil
}

func (h *ServiceHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := h.applicationSrv.ListApplications(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, applicationListToApi(applications))
}
