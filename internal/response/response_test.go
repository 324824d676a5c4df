package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bucketcms/service/internal/apperr"
)

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, Body{"itemId": "foo"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"itemId":"foo"}`, rec.Body.String())
}

func TestCreated_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestFail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "not found",
			err:  apperr.NotFound.New("item %q not found", "foo"),
			code: http.StatusNotFound,
			body: `{"success":false,"error":"item \"foo\" not found","kind":"not_found","retryable":false}`,
		},
		{
			name: "storage message is passed through",
			err:  apperr.Storage.Wrap(errors.New("NoSuchBucket: The specified bucket does not exist")),
			code: http.StatusInternalServerError,
			body: `{"success":false,"error":"NoSuchBucket: The specified bucket does not exist","kind":"storage","retryable":true}`,
		},
		{
			name: "corrupt",
			err:  apperr.CorruptRecord.New("bad blob"),
			code: http.StatusInternalServerError,
			body: `{"success":false,"error":"bad blob","kind":"corrupt_record","retryable":false}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestFailItem(t *testing.T) {
	rec := httptest.NewRecorder()
	FailItem(rec, apperr.Storage.New("renamed %q to %q but could not remove the old key", "foo", "baz"), "baz")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"renamed \"foo\" to \"baz\" but could not remove the old key","kind":"storage","retryable":true,"itemId":"baz"}`, rec.Body.String())
}

func TestHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	Unauthorized(rec, "authorization header required")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"authorization header required","kind":"auth","retryable":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	MethodNotAllowed(rec, http.MethodPatch)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"method_not_allowed"`)
}
