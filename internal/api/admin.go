package api

import (
	"net/http"

	"github.com/bucketcms/service/internal/config"
	"github.com/bucketcms/service/internal/content"
	"github.com/bucketcms/service/internal/response"
)

type reconcileResponse struct {
	Success bool           `json:"success" example:"true"`
	Report  content.Report `json:"report"`
}

type configStatusResponse struct {
	Success bool                    `json:"success" example:"true"`
	Config  config.ConfigValidation `json:"config"`
}

// CreateBucket godoc
//
//	@Summary		Provision bucket
//	@Description	Create the configured bucket and grant anonymous read on its objects. Fails if the bucket already exists.
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.SuccessEnvelope
//	@Failure		401	{object}	response.ErrorEnvelope
//	@Failure		500	{object}	response.ErrorEnvelope
//	@Router			/bucket/create [post]
func (h *Handler) CreateBucket(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Provisioner.Provision(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, nil)
}

// Reconcile godoc
//
//	@Summary		Reconcile interrupted renames
//	@Description	Finish or roll back every rename recorded in the journal.
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	reconcileResponse
//	@Failure		500	{object}	response.ErrorEnvelope
//	@Router			/maintenance/reconcile [post]
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.app.Reconciler.Run(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, response.Body{"report": report})
}

// ConfigStatus godoc
//
//	@Summary		Storage configuration status
//	@Description	Reports which storage settings are present without revealing them.
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	configStatusResponse
//	@Router			/config/status [get]
func (h *Handler) ConfigStatus(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.Body{"config": h.app.Config.Validate()})
}
