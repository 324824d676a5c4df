package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bucketcms/service/internal/apperr"
	"github.com/bucketcms/service/internal/middleware"
)

func TestLogin(t *testing.T) {
	svc := NewService("admin", "hunter2", "secret")
	svc.now = func() time.Time { return time.Now().Add(-time.Minute) }

	token, err := svc.Login("admin", "hunter2")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)

	_, err = svc.Login("admin", "wrong")
	assert.True(t, apperr.Auth.Has(err))
	_, err = svc.Login("root", "hunter2")
	assert.True(t, apperr.Auth.Has(err))
}

func TestLogin_NoPasswordConfigured(t *testing.T) {
	_, err := NewService("admin", "", "secret").Login("admin", "")
	assert.True(t, apperr.Auth.Has(err))
}

func TestHandler_TokenPassesRequireAuth(t *testing.T) {
	h := NewHandler(NewService("admin", "hunter2", "secret"))

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"hunter2"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, jsonDecode(rec, &body))
	assert.True(t, body.Success)

	protected := middleware.RequireAuth("secret", true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(middleware.Subject(r.Context())))
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	h := NewHandler(NewService("admin", "hunter2", "secret"))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"missing password", `{"username":"admin"}`, http.StatusBadRequest},
		{"bad credentials", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}
