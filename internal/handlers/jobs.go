package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/applyflow/applyflow/internal/store/model"
)

// JobListings returns one posting when a jobId is supplied in the body, or
// all postings otherwise. The body is optional.
func (h *ServiceHandler) JobListings(w http.ResponseWriter, r *http.Request) {
	var req JobListingsRequest
	if r.ContentLength != 0 {
		if err := render.Bind(r, &req); err != nil && !errors.Is(err, io.EOF) {
			renderBadRequest(w, r, "invalid request body")
			return
		}
	}

	if req.JobID != "" {
		id, err := uuid.Parse(req.JobID)
		if err != nil {
			renderBadRequest(w, r, "invalid jobId")
			return
		}
		posting, err := h.jobSrv.GetJob(r.Context(), id)
		if err != nil {
			renderError(w, r, err)
			return
		}
		render.JSON(w, r, posting)
		return
	}

	postings, err := h.jobSrv.ListJobs(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, postings)
}

// CreateJobPostings bulk-ingests postings.
func (h *ServiceHandler) CreateJobPostings(w http.ResponseWriter, r *http.Request) {
	var postings []model.JobPosting
	if err := render.DecodeJSON(r.Body, &postings); err != nil {
		renderBadRequest(w, r, "invalid request body")
		return
	}
	if len(postings) == 0 {
		renderBadRequest(w, r, "no job postings provided")
		return
	}

	created, err := h.jobSrv.CreateJobs(r.Context(), postings)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}
