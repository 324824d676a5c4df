package api

import (
	"encoding/json"
	"net/http"

	"github.com/bucketcms/service/internal/content"
	"github.com/bucketcms/service/internal/response"
)

type createItemRequest struct {
	CollectionName string          `json:"collectionName" example:"posts"`
	ItemName       string          `json:"itemName"       example:"Hello World"`
	Data           json.RawMessage `json:"data"           swaggertype:"object"`
}

type updateItemRequest struct {
	CollectionName string          `json:"collectionName" example:"posts"`
	ItemID         string          `json:"itemId"         example:"hello-world"`
	ItemName       string          `json:"itemName"       example:"Hello Again"`
	Data           json.RawMessage `json:"data"           swaggertype:"object"`
}

type itemIDResponse struct {
	Success bool   `json:"success" example:"true"`
	ItemID  string `json:"itemId"  example:"hello-world"`
}

type itemResponse struct {
	Success bool         `json:"success" example:"true"`
	Item    content.Item `json:"item"`
}

type itemPageResponse struct {
	Success   bool           `json:"success" example:"true"`
	Items     []content.Item `json:"items"`
	NextToken string         `json:"nextToken,omitempty" example:"aXRlbXMvcG9zdHMvaGVsbG8ud29ybGQuanNvbg"`
}

type itemCountResponse struct {
	Success   bool `json:"success"   example:"true"`
	ItemCount int  `json:"itemCount" example:"42"`
}

// CreateItem godoc
//
//	@Summary		Create item
//	@Description	Store a new item under a slug derived from itemName. Colliding slugs get a numeric suffix (foo, foo-1, foo-2, ...).
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		createItemRequest	true	"New item"
//	@Success		201		{object}	itemIDResponse
//	@Failure		400		{object}	response.ErrorEnvelope
//	@Failure		401		{object}	response.ErrorEnvelope
//	@Failure		500		{object}	response.ErrorEnvelope
//	@Router			/item/create [post]
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.app.Items.Create(r.Context(), req.CollectionName, req.ItemName, req.Data)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, response.Body{"itemId": id})
}

// ReadItem godoc
//
//	@Summary		Read item
//	@Tags			items
//	@Produce		json
//	@Security		BearerAuth
//	@Param			collectionName	query		string	true	"Collection name"
//	@Param			itemId			query		string	true	"Item id"
//	@Success		200				{object}	itemResponse
//	@Failure		400				{object}	response.ErrorEnvelope
//	@Failure		404				{object}	response.ErrorEnvelope
//	@Failure		500				{object}	response.ErrorEnvelope
//	@Router			/item/read [get]
func (h *Handler) ReadItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	collectionName, itemID := q.Get("collectionName"), q.Get("itemId")

	rec, err := h.app.Items.Read(r.Context(), collectionName, itemID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, response.Body{"item": content.Item{ItemID: itemID, ItemName: rec.ItemName, Data: rec.Data}})
}

// UpdateItem godoc
//
//	@Summary		Update item
//	@Description	Replace an item's name and data. When the name changes the item moves to a new slug, which is returned.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		updateItemRequest	true	"Updated item"
//	@Success		200		{object}	itemIDResponse
//	@Failure		400		{object}	response.ErrorEnvelope
//	@Failure		404		{object}	response.ErrorEnvelope
//	@Failure		409		{object}	response.ErrorEnvelope
//	@Failure		500		{object}	response.ErrorEnvelope	"itemId is set when the item already moved to its new slug"
//	@Router			/item/update [put]
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.app.Items.Update(r.Context(), req.CollectionName, req.ItemID, req.ItemName, req.Data)
	if err != nil {
		h.failItem(w, r, err, id)
		return
	}
	response.OK(w, response.Body{"itemId": id})
}

// DeleteItem godoc
//
//	@Summary		Delete item
//	@Tags			items
//	@Produce		json
//	@Security		BearerAuth
//	@Param			collectionName	query		string	true	"Collection name"
//	@Param			itemId			query		string	true	"Item id"
//	@Success		200				{object}	response.SuccessEnvelope
//	@Failure		400				{object}	response.ErrorEnvelope
//	@Failure		404				{object}	response.ErrorEnvelope
//	@Failure		500				{object}	response.ErrorEnvelope
//	@Router			/item/delete [delete]
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := h.app.Items.Delete(r.Context(), q.Get("collectionName"), q.Get("itemId")); err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, nil)
}

// ListItems godoc
//
//	@Summary		List items
//	@Description	One page of a collection's items in key order. Pass nextToken back as token to fetch the next page; it is absent on the last page.
//	@Tags			items
//	@Produce		json
//	@Security		BearerAuth
//	@Param			collectionName	query		string	true	"Collection name"
//	@Param			token			query		string	false	"Continuation token from the previous page"
//	@Success		200				{object}	itemPageResponse
//	@Failure		400				{object}	response.ErrorEnvelope
//	@Failure		500				{object}	response.ErrorEnvelope
//	@Router			/items/read [get]
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.app.Enumerator.ListItems(r.Context(), q.Get("collectionName"), q.Get("token"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	body := response.Body{"items": page.Items}
	if page.NextToken != "" {
		body["nextToken"] = page.NextToken
	}
	response.OK(w, body)
}

// CountItems godoc
//
//	@Summary		Count items
//	@Description	Counts a collection's items by scanning its whole prefix.
//	@Tags			items
//	@Produce		json
//	@Security		BearerAuth
//	@Param			collectionName	query		string	true	"Collection name"
//	@Success		200				{object}	itemCountResponse
//	@Failure		400				{object}	response.ErrorEnvelope
//	@Failure		500				{object}	response.ErrorEnvelope
//	@Router			/items/count [get]
func (h *Handler) CountItems(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.Enumerator.CountItems(r.Context(), r.URL.Query().Get("collectionName"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, response.Body{"itemCount": n})
}
