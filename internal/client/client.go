// Package client submits GeoJSON documents to a running geogate service.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"geogate/internal/domain"
	"geogate/internal/shared/middleware"
)

// keyFile is the layout of the credential file: {"key": "..."}.
type keyFile struct {
	Key string `json:"key"`
}

// LoadAPIKey reads the API key from a JSON key file.
func LoadAPIKey(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return "", fmt.Errorf("failed to parse key file %s: %w", path, err)
	}
	if kf.Key == "" {
		return "", fmt.Errorf("key file %s has no \"key\" entry", path)
	}
	return kf.Key, nil
}

type Client struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Submit posts payload and decodes the service's status/body response.
func (c *Client) Submit(payload []byte) (domain.Response, error) {
	agent := fiber.Post(c.URL).
		ContentType(fiber.MIMEApplicationJSON).
		Body(payload)
	if c.APIKey != "" {
		agent.Set(middleware.APIKeyHeader, c.APIKey)
	}
	if c.Timeout > 0 {
		agent.Timeout(c.Timeout)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return domain.Response{}, fmt.Errorf("failed to post submission: %w", errors.Join(errs...))
	}

	var resp domain.Response
	if err := json.Unmarshal(body, &resp); err != nil || resp.StatusCode == 0 {
		// Not a pipeline response, e.g. an auth or gateway error.
		return domain.Response{StatusCode: code, Body: string(body)}, nil
	}
	return resp, nil
}
