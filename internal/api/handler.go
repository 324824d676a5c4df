// Package api exposes the content services over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/app"
	"github.com/bucketcms/service/internal/response"
)

// maxBodyBytes caps request bodies; item data is stored as a single blob.
const maxBodyBytes = 5 << 20

// Handler holds the HTTP handlers for content, collection and admin routes.
type Handler struct {
	app *app.App
	log *zap.Logger
}

// NewHandler creates a Handler backed by a.
func NewHandler(a *app.App) *Handler {
	return &Handler{app: a, log: a.Log.Named("api")}
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation.New("invalid request body: %v", err)
	}
	return nil
}

// fail writes err and logs server-side failures.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.failItem(w, r, err, "")
}

// failItem is fail for operations that may have moved the item to itemID
// before failing.
func (h *Handler) failItem(w http.ResponseWriter, r *http.Request, err error, itemID string) {
	if apperr.StatusCode(err) >= http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("kind", string(apperr.KindOf(err))),
			zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
	}
	response.FailItem(w, err, itemID)
}
