package middleware

import (
	"errors"
	"math"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"golang.org/x/time/rate"
)

var errRateLimited = errors.New("global request rate exceeded")

// NewRateLimit returns middleware that admits at most perSecond requests per
// second across all clients, with a burst of the same size. Rejected requests
// get 429. perSecond <= 0 disables limiting.
func NewRateLimit(perSecond float64) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	burst := int(math.Ceil(perSecond))
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too many requests", errRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
