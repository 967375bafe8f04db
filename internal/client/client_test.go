package client

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geogate/internal/domain"
	appError "geogate/internal/shared/error"
	"geogate/internal/shared/middleware"
)

func TestLoadAPIKey(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "aws-key.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"key": "abc"}`), 0o600))
	key, err := LoadAPIKey(good)
	require.NoError(t, err)
	assert.Equal(t, "abc", key)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"token": "abc"}`), 0o600))
	_, err = LoadAPIKey(empty)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o600))
	_, err = LoadAPIKey(broken)
	assert.Error(t, err)

	_, err = LoadAPIKey(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

// startServer serves a stand-in for the submission endpoint on a random port.
func startServer(t *testing.T) string {
	t.Helper()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          appError.ErrorHandler(),
	})
	app.Post("/submissions", middleware.APIKeyMiddleware("secret"), func(c *fiber.Ctx) error {
		if len(c.Body()) == 0 {
			return c.Status(400).JSON(domain.Response{StatusCode: 400, Body: "400: Input is not a valid geojson"})
		}
		return c.JSON(domain.Response{StatusCode: 200, Body: "Submission Accepted as Field1.geojson in bucket"})
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String() + "/submissions"
}

func TestClient_Submit(t *testing.T) {
	url := startServer(t)

	c := &Client{URL: url, APIKey: "secret", Timeout: 5 * time.Second}
	resp, err := c.Submit([]byte(`{"features":[]}`))
	require.NoError(t, err)
	assert.Equal(t, domain.Response{StatusCode: 200, Body: "Submission Accepted as Field1.geojson in bucket"}, resp)

	resp, err = c.Submit(nil)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "400: Input is not a valid geojson", resp.Body)
}

func TestClient_SubmitWithoutKey(t *testing.T) {
	url := startServer(t)

	c := &Client{URL: url, Timeout: 5 * time.Second}
	resp, err := c.Submit([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Contains(t, resp.Body, appError.ErrMissingAPIKey.Code)
}

func TestClient_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := &Client{URL: "http://" + addr + "/submissions", Timeout: time.Second}
	_, err = c.Submit([]byte(`{}`))
	assert.Error(t, err)
}
