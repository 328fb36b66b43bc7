package controllers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/eisenhub/catalog/pkg/composables"
)

func errorRequest(t *testing.T) *http.Request {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	return req.WithContext(composables.WithLogger(req.Context(), logrus.NewEntry(logger)))
}

func TestWriteError_EchoesRequestID(t *testing.T) {
	req := errorRequest(t)
	req = req.WithContext(composables.WithRequestID(req.Context(), "req-123"))
	rec := httptest.NewRecorder()

	writeError(rec, req, http.StatusNotFound, "asset not found", errors.New("missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"NOT_FOUND","message":"asset not found","details":"req-123"}`, rec.Body.String())
}

func TestWriteError_WithoutRequestID(t *testing.T) {
	req := errorRequest(t)
	rec := httptest.NewRecorder()

	writeError(rec, req, http.StatusBadRequest, "invalid tree query", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"code":"BAD_REQUEST","message":"invalid tree query"}`, rec.Body.String())
}
