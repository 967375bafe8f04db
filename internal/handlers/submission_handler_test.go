package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geogate/internal/domain"
	appError "geogate/internal/shared/error"
	"geogate/internal/shared/middleware"
)

type stubSubmitter struct {
	receipt *domain.Receipt
	err     error
	got     []byte
}

func (s *stubSubmitter) HandleSubmission(_ context.Context, payload []byte) (*domain.Receipt, error) {
	s.got = payload
	return s.receipt, s.err
}

func newTestApp(service Submitter, apiKey string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: appError.ErrorHandler()})
	app.Use(middleware.RequestIDMiddleware())
	RegisterRoutes(app, service, apiKey)
	return app
}

func post(t *testing.T, app *fiber.App, body string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp.StatusCode, decoded
}

func TestHandleSubmission_Accepted(t *testing.T) {
	stub := &stubSubmitter{receipt: &domain.Receipt{Name: "Field1", Bucket: "b", ObjectKey: "Field1.geojson", FeatureCount: 1}}
	app := newTestApp(stub, "")

	status, body := post(t, app, `{"features":[]}`, nil)

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 200, body["statusCode"])
	assert.Equal(t, "Submission Accepted as Field1.geojson in bucket", body["body"])
	assert.Equal(t, `{"features":[]}`, string(stub.got))
}

func TestHandleSubmission_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "invalid geojson", err: appError.ErrInvalidGeoJSON, status: 400, body: "400: Input is not a valid geojson"},
		{name: "missing date", err: appError.MissingDateField("gsstart"), status: 400, body: "400: gsstart is required in feature properties"},
		{name: "storage", err: appError.ErrStorageWriteFailed, status: 500, body: "Data Failed to send to S3 Bucket. Check API token parameters."},
		{name: "unexpected", err: errors.New("boom"), status: 500, body: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(&stubSubmitter{err: tt.err}, "")

			status, body := post(t, app, `not json`, nil)

			assert.Equal(t, tt.status, status)
			assert.EqualValues(t, tt.status, body["statusCode"])
			assert.Equal(t, tt.body, body["body"])
		})
	}
}

func TestHandleSubmission_APIKey(t *testing.T) {
	stub := &stubSubmitter{receipt: &domain.Receipt{ObjectKey: "x.geojson"}}
	app := newTestApp(stub, "secret")

	status, body := post(t, app, `{}`, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, appError.ErrMissingAPIKey.Code, body["code"])
	assert.NotEmpty(t, body["request_id"])

	status, body = post(t, app, `{}`, map[string]string{middleware.APIKeyHeader: "wrong"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, appError.ErrInvalidAPIKey.Code, body["code"])
	assert.Nil(t, stub.got, "handler must not run without a valid key")

	status, body = post(t, app, `{}`, map[string]string{middleware.APIKeyHeader: "secret"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Submission Accepted as x.geojson in bucket", body["body"])
}

func TestHealth(t *testing.T) {
	app := newTestApp(&stubSubmitter{}, "secret")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}
