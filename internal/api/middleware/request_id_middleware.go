package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/plantshop/internal/constants"
	"github.com/google/uuid"
)

// RequestIdMiddleware propagates an inbound request id or mints one, and
// echoes it back on the response for client-side correlation.
func RequestIdMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestId := r.Header.Get("request_id")
		if requestId == "" {
			requestId = uuid.New().String()
		}

		w.Header().Set("X-Request-Id", requestId)
		ctx := context.WithValue(r.Context(), constants.RequestIDKey, requestId)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
