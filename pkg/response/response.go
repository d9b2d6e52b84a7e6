// Package response writes the storefront's JSON envelopes.
//
// Every payload carries an "ok" flag:
//
//	{"ok": true, "product": {...}}
//	{"ok": false, "error": "Product not found"}
//	{"ok": false, "errors": {"title": ["The title field is required."]}}
package response

import (
	"encoding/json"
	"net/http"
)

// Payload is a free-form JSON object merged into the envelope.
type Payload map[string]interface{}

func write(w http.ResponseWriter, status int, body Payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// OK sends a 200 with ok=true plus the given fields.
func OK(w http.ResponseWriter, extra Payload) {
	body := Payload{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	write(w, http.StatusOK, body)
}

// Error sends ok=false with a single error message.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Payload{"ok": false, "error": message})
}

// ErrorWith sends ok=false with a message plus extra fields, e.g. the
// existing record on a 409 conflict.
func ErrorWith(w http.ResponseWriter, status int, message string, extra Payload) {
	body := Payload{"ok": false, "error": message}
	for k, v := range extra {
		body[k] = v
	}
	write(w, status, body)
}

// ValidationErrors sends a 400 with a field → messages map.
func ValidationErrors(w http.ResponseWriter, errs map[string][]string) {
	write(w, http.StatusBadRequest, Payload{"ok": false, "errors": errs})
}

// ValidationErrorsWith sends a 400 with the field → messages map plus extra
// fields, e.g. the submitted values echoed back for form prefill.
func ValidationErrorsWith(w http.ResponseWriter, errs map[string][]string, extra Payload) {
	body := Payload{"ok": false, "errors": errs}
	for k, v := range extra {
		body[k] = v
	}
	write(w, http.StatusBadRequest, body)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}
