package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/applyflow/applyflow/pkg/requestid"
)

// RequestID takes the request ID from the x-request-id header, or the one
// chi already generated, or mints a new UUID, and injects it into the
// request context for consistent access across the application layer.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("x-request-id")

		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}

		if requestID == "" {
			requestID = requestid.Generate()
		}

		ctx := requestid.ToContext(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
