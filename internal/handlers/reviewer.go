package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/applyflow/applyflow/internal/service"
)

func (h *ServiceHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewSrv.ListReviews(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, reviewListToApi(reviews))
}

func (h *ServiceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reviewSrv.Stats(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

func (h *ServiceHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	applicationID, err := uuid.Parse(chi.URLParam(r, "applicationId"))
	if err != nil {
		renderBadRequest(w, r, "invalid application id")
		return
	}

	var req FinalizeRequest
	if err := render.Bind(r, &req); err != nil {
		renderBadRequest(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	outcome, err := h.reviewSrv.Finalize(r.Context(), service.FinalizeForm{
		ApplicationID: applicationID,
		Decision:      req.Decision,
		ReviewerID:    req.ReviewerID,
		ReasoningLog:  req.ReasoningLog,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, reviewToApi(*outcome))
}

func (h *ServiceHandler) QuickConfirm(w http.ResponseWriter, r *http.Request) {
	applicationID, err := uuid.Parse(chi.URLParam(r, "applicationId"))
	if err != nil {
		renderBadRequest(w, r, "invalid application id")
		return
	}

	outcome, err := h.reviewSrv.QuickConfirm(r.Context(), applicationID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, reviewToApi(*outcome))
}
