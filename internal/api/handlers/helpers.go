package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"mixtrail-service/internal/api/dto"
	"mixtrail-service/internal/ports"
)

// Upper bound on JSON request bodies.
const maxBodyBytes = 8 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode_failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into dst and validates it.
// Unknown fields are rejected. On failure it writes a 400 response and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeBody(w, r, dst, true)
}

// decodeLooseJSON is decodeJSON without the unknown field check. The export
// endpoints take picks in whatever shape the client last received them.
func decodeLooseJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeBody(w, r, dst, false)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any, strict bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	if strict {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	if err := dto.Validate(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeServiceError maps errors from routing and catalogue calls to a status.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "address not found")
	case errors.Is(err, ports.ErrNoRoute):
		writeError(w, r, http.StatusBadGateway, "no route found between the given stops")
	case r.Context().Err() != nil:
		slog.WarnContext(r.Context(), op+"_canceled", "err", err)
		writeError(w, r, http.StatusServiceUnavailable, "request canceled")
	default:
		slog.ErrorContext(r.Context(), op+"_failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
