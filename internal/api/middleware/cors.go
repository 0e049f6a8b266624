package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/phrazzld/catalog-api/internal/api/shared"
)

// NewCORS allows cross-origin requests from any origin. Preflight requests
// are answered with 204 and never reach the routes.
func NewCORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders:       []string{"Accept", "Content-Type", shared.TraceIDHeader},
		ExposedHeaders:       []string{shared.TraceIDHeader},
		MaxAge:               300,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
