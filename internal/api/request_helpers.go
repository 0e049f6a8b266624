package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
)

// idParam is the route parameter holding a record id.
const idParam = "id"

// getPathID extracts the record id from the URL path. The whole segment
// must be a base-10 integer; "1abc" is rejected rather than read as 1.
func getPathID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, idParam)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

// handlePathID extracts the record id and, when it is not an integer,
// writes the resource's not-found response. No record can have such an id.
func handlePathID(w http.ResponseWriter, r *http.Request, notFoundMessage string, log *slog.Logger) (int, bool) {
	id, err := getPathID(r)
	if err != nil {
		if log == nil {
			log = logger.FromContextOrDefault(r.Context(), slog.Default())
		}
		log.Debug("non-numeric record id", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusNotFound, notFoundMessage)
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into v and writes a 400 response
// when the body is not valid JSON for v. Malformed bodies are logged at WARN.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequestFormat, err,
			shared.WithElevatedLogLevel())
		return false
	}
	return true
}

// decodeValidBody decodes the body like decodeBody and then checks that
// every mandatory field is present, writing the validation message as a 400.
func decodeValidBody(w http.ResponseWriter, r *http.Request, v interface{ Validate() error }) bool {
	if !decodeBody(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
