// Package response provides shared JSON response helpers for HTTP handlers.
// Success bodies are flat objects carrying "success": true next to their
// fields; failures carry the message, the error kind and whether a retry may
// help.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/bucketcms/service/internal/apperr"
)

// Body is a success payload. The helpers add the success flag.
type Body map[string]any

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	Success   bool        `json:"success" example:"false"`
	Error     string      `json:"error" example:"item \"foo\" not found in collection \"posts\""`
	Kind      apperr.Kind `json:"kind" example:"not_found"`
	Retryable bool        `json:"retryable" example:"false"`
	ItemID    string      `json:"itemId,omitempty" example:"hello-world"`
}

// SuccessEnvelope documents the minimal success body.
type SuccessEnvelope struct {
	Success bool `json:"success" example:"true"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func success(body Body) Body {
	if body == nil {
		body = Body{}
	}
	body["success"] = true
	return body
}

// OK writes a 200 response with body.
func OK(w http.ResponseWriter, body Body) {
	JSON(w, http.StatusOK, success(body))
}

// Created writes a 201 response with body.
func Created(w http.ResponseWriter, body Body) {
	JSON(w, http.StatusCreated, success(body))
}

// Fail writes err with the status, kind and retry hint of its class.
func Fail(w http.ResponseWriter, err error) {
	FailItem(w, err, "")
}

// FailItem is Fail with the id the item lives under, for failures that left
// it at a new key.
func FailItem(w http.ResponseWriter, err error, itemID string) {
	JSON(w, apperr.StatusCode(err), ErrorEnvelope{
		Success:   false,
		Error:     apperr.Message(err),
		Kind:      apperr.KindOf(err),
		Retryable: apperr.Retryable(err),
		ItemID:    itemID,
	})
}

// BadRequest writes a 400 validation failure.
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, apperr.Validation.New("%s", message))
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, apperr.Auth.New("%s", message))
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, apperr.NotFound.New("%s", message))
}

// MethodNotAllowed writes a 405 response.
func MethodNotAllowed(w http.ResponseWriter, method string) {
	Fail(w, apperr.MethodNotAllowed.New("method %s not allowed", method))
}
