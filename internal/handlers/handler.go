// Package handlers exposes the HTTP surface of the portal: job listings,
// application submission, the reviewer dashboard and the general AI
// endpoints.
package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/internal/service"
)

// AIGenerator is the slice of the genai client used by the general text and
// text/image endpoints.
type AIGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateTextImage(ctx context.Context, prompt, image string) (string, error)
}

type ServiceHandler struct {
	cfg            *config.Config
	jobSrv         *service.JobService
	applicationSrv *service.ApplicationService
	reviewSrv      *service.ReviewService
	ai             AIGenerator
	validate       *validator.Validate
}

func NewServiceHandler(
	cfg *config.Config,
	jobService *service.JobService,
	applicationService *service.ApplicationService,
	reviewService *service.ReviewService,
	ai AIGenerator,
) *ServiceHandler {
	return &ServiceHandler{
		cfg:            cfg,
		jobSrv:         jobService,
		applicationSrv: applicationService,
		reviewSrv:      reviewService,
		ai:             ai,
		validate:       validator.New(),
	}
}

// Routes mounts the API on the given router.
func (h *ServiceHandler) Routes(router chi.Router) {
	router.Route("/api", func(r chi.Router) {
		r.Post("/jobListings", h.JobListings)
		r.Post("/jobPostings", h.CreateJobPostings)
		r.Post("/submitApplication", h.SubmitApplication)

		r.Route("/reviewer", func(r chi.Router) {
			r.Get("/applications", h.ListApplications)
			r.Get("/reviews", h.ListReviews)
			r.Get("/stats", h.Stats)
			r.Put("/finalize/{applicationId}", h.Finalize)
			r.Put("/confirm/{applicationId}", h.QuickConfirm)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/text", h.GenerateText)
			r.Post("/text-image", h.GenerateTextImage)
		})
	})
}

// renderError maps service errors to JSON error responses.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch err.(type) {
	case *service.ErrInvalidRequest:
		status = http.StatusBadRequest
	case *service.ErrResourceNotFound:
		status = http.StatusNotFound
	}
	_ = render.Render(w, r, &ErrResponse{HTTPStatusCode: status, ErrorText: err.Error()})
}

func renderBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	_ = render.Render(w, r, &ErrResponse{HTTPStatusCode: http.StatusBadRequest, ErrorText: message})
}
