package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/plantshop/internal/limiter"
	"github.com/RoyceAzure/lab/plantshop/internal/util"
)

// RateLimitMiddleware throttles per authenticated user, falling back to the
// client address for anonymous requests.
func RateLimitMiddleware(rateLimiter limiter.ILimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if payload := util.GetTokenPayloadFromContext(r.Context()); payload != nil {
				key = fmt.Sprintf("user:%d", payload.UserID)
			}

			if !rateLimiter.Allow(r.Context(), key) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"message": "Too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
