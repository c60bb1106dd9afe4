package confirm

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	assert.ErrorIs(t, Require(Cancel), ErrRequired)
	assert.ErrorIs(t, Require(""), ErrRequired)
	assert.NoError(t, Require(Delete))
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodDelete, "/reminders/x?confirm=DELETE", nil)
	assert.Equal(t, Delete, FromRequest(r))

	r = httptest.NewRequest(http.MethodDelete, "/reminders/x", nil)
	assert.Equal(t, Cancel, FromRequest(r))

	r.Header.Set("X-Confirm", "delete")
	assert.Equal(t, Delete, FromRequest(r))
}

func TestWriteRequired(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteRequired(rec)

	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Equal(t, "Cancel,Delete", rec.Header().Get("X-Confirm-Choices"))
}
