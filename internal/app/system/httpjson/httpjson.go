// Package httpjson writes JSON responses and maps application errors to
// HTTP statuses.
//
// Error envelope:
//
//	{ "error": { "code": "validation", "message": "trip id is required" } }
//
// Codes: validation (400), unauthorized (401), forbidden (403),
// not_found (404), server (500). Store failures are logged with full
// detail and surfaced as a generic server error.
package httpjson

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Error codes used in the response envelope.
const (
	CodeValidation   = "validation"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeServer       = "server"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail writes an error envelope with the given status and code.
func Fail(w http.ResponseWriter, status int, code, message string) {
	Respond(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// Validation writes a 400 for a malformed or incomplete request.
func Validation(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, CodeValidation, message)
}

// Unauthorized writes a 401.
func Unauthorized(w http.ResponseWriter) {
	Fail(w, http.StatusUnauthorized, CodeUnauthorized, "sign in required")
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter, message string) {
	Fail(w, http.StatusForbidden, CodeForbidden, message)
}

// NotFound writes a 404.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, CodeNotFound, message)
}

// ServerError logs the underlying failure and writes a generic 500.
// The error detail never reaches the client.
func ServerError(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	if log != nil {
		log.Error(operation, zap.Error(err))
	}
	Fail(w, http.StatusInternalServerError, CodeServer, "an internal error occurred")
}

// Decode reads the request body into v. Returns false (after writing a
// validation error) when the body is not valid JSON for v.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Validation(w, "invalid JSON request body")
		return false
	}
	return true
}
