package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jrsteele09/go-storefront-api/internal/errors"
)

const maxBodyBytes = 1 << 20

// Envelope wraps every JSON response
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Code: status, Message: message, Data: data}); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps err to its status code. Internal causes are logged, never sent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request failed")
	}
	writeJSON(w, kind.HTTPStatus(), apperrors.PublicMessage(err), nil)
}

// decodeJSON reads a JSON body into v. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return apperrors.Validation("request body must be valid JSON")
	}
	return nil
}
