package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bucketcms/service/internal/response"
)

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"s3cret"`
}

type loginResponse struct {
	Success bool   `json:"success" example:"true"`
	Token   string `json:"token"   example:"eyJhbGci..."`
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchange the admin credentials for a Bearer token valid for 24 hours.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Admin credentials"
//	@Success		200		{object}	loginResponse
//	@Failure		400		{object}	response.ErrorEnvelope
//	@Failure		401		{object}	response.ErrorEnvelope
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		response.BadRequest(w, "username and password are required")
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		response.Fail(w, err)
		return
	}

	response.OK(w, response.Body{"token": token})
}
