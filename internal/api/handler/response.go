package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/plantshop/internal/apperr"
	"github.com/RoyceAzure/lab/plantshop/internal/util"
	"github.com/rs/zerolog/log"
)

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

// writeError maps err onto the error taxonomy. Internal failures are logged
// with the request id and replaced by a generic message; no internal detail
// crosses the boundary.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", util.GetRequestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("request failed")
	}
	writeJSON(w, status, errorBody{Message: apperr.ClientMessage(err)})
}

// authedUserID extracts the authenticated user id; ok is false when the
// request carried no verified token.
func authedUserID(r *http.Request) (int64, bool) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return 0, false
	}
	return payload.UserID, true
}
