package api

import (
	"net/http"

	"github.com/bucketcms/service/internal/content"
	"github.com/bucketcms/service/internal/fields"
	"github.com/bucketcms/service/internal/response"
)

type collectionsResponse struct {
	Success     bool                      `json:"success" example:"true"`
	Collections []content.CollectionCount `json:"collections"`
}

type schemaResponse struct {
	Success    bool              `json:"success" example:"true"`
	Collection fields.Collection `json:"collection"`
}

// Collections godoc
//
//	@Summary		List collections
//	@Description	Every collection that has items or a schema, with its item count.
//	@Tags			collections
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	collectionsResponse
//	@Failure		500	{object}	response.ErrorEnvelope
//	@Router			/collections [get]
func (h *Handler) Collections(w http.ResponseWriter, r *http.Request) {
	counts, err := h.app.Enumerator.CollectionCounts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, response.Body{"collections": counts})
}

// PutSchema godoc
//
//	@Summary		Save collection schema
//	@Description	Declare a collection's fields. Items written afterwards are validated against it.
//	@Tags			collections
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		fields.Collection	true	"Schema"
//	@Success		200		{object}	response.SuccessEnvelope
//	@Failure		400		{object}	response.ErrorEnvelope
//	@Failure		500		{object}	response.ErrorEnvelope
//	@Router			/collections/schema [put]
func (h *Handler) PutSchema(w http.ResponseWriter, r *http.Request) {
	var c fields.Collection
	if err := decode(w, r, &c); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.app.Schemas.PutSchema(r.Context(), c); err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, nil)
}

// GetSchema godoc
//
//	@Summary		Get collection schema
//	@Tags			collections
//	@Produce		json
//	@Security		BearerAuth
//	@Param			collectionName	query		string	true	"Collection name"
//	@Success		200				{object}	schemaResponse
//	@Failure		404				{object}	response.ErrorEnvelope
//	@Failure		500				{object}	response.ErrorEnvelope
//	@Router			/collections/schema [get]
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	c, err := h.app.Schemas.GetSchema(r.Context(), r.URL.Query().Get("collectionName"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, response.Body{"collection": c})
}
