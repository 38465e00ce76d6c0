package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-drive-proxy/google"
)

const contentTypeJSON = "application/json; charset=utf-8"

// HealthHandler reports liveness. It does not touch Google, so it
// stays green while upstream credentials are broken.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"app":    s.config.GetAppName(),
		})
	}
}

// PreflightHandler terminates OPTIONS requests that the CORS
// middleware has not already answered.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// NotFoundHandler handles unmatched routes
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, "not_found", "Resource not found", http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeJSONError writes an error response in the API's envelope format
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}

// writeUpstreamError relays a non-2xx Google reply, preserving its
// status code and body for the front-end to report.
func writeUpstreamError(w http.ResponseWriter, resp google.Response) {
	writeJSONError(w, "upstream_error", string(resp.Body), resp.StatusCode)
}

// isSuccess reports whether a proxied status code is in the 2xx range
func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
