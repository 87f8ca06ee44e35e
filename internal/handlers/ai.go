package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

func (h *ServiceHandler) GenerateText(w http.ResponseWriter, r *http.Request) {
	var req AITextRequest
	if err := render.Bind(r, &req); err != nil {
		renderBadRequest(w, r, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		renderBadRequest(w, r, err.Error())
		return
	}

	text, err := h.ai.GenerateText(r.Context(), req.Prompt)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, AITextReply{Text: text})
}

func (h *ServiceHandler) GenerateTextImage(w http.ResponseWriter, r *http.Request) {
	var req AITextImageRequest
	if err := render.Bind(r, &req); err != nil {
		renderBadRequest(w, r, "invalid request body")
		return
	}
	if req.Prompt == "" {
		renderBadRequest(w, r, "prompt is required")
		return
	}

	text, err := h.ai.GenerateTextImage(r.Context(), req.Prompt, req.Image)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, AITextReply{Text: text})
}
