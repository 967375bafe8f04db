package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	appError "geogate/internal/shared/error"
	"geogate/internal/shared/log"
)

type LoggingConfig struct {
	MaxBodyLogSize  int
	SkipPaths       []string
	LogRequestBody  bool
	LogResponseBody bool
}

func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		MaxBodyLogSize:  1024,
		SkipPaths:       []string{"/health"},
		LogRequestBody:  true,
		LogResponseBody: true,
	}
}

func convertFastHTTPRequest(c *fiber.Ctx) *http.Request {
	req := &http.Request{
		Method: c.Method(),
		URL: &url.URL{
			Scheme:   c.Protocol(),
			Host:     c.Hostname(),
			Path:     c.Path(),
			RawQuery: string(c.Request().URI().QueryString()),
		},
		Header:     make(http.Header),
		RemoteAddr: c.IP(),
		Host:       c.Hostname(),
	}

	c.Request().Header.VisitAll(func(key, value []byte) {
		req.Header.Set(string(key), string(value))
	})

	return req
}

// ensureRequestID assigns a request id to the fiber context and its user
// context once; later calls reuse it.
func ensureRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("request_id").(string); ok && id != "" {
		return id
	}
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("request_id", id)
	c.SetUserContext(log.WithRequestID(c.UserContext(), id))
	return id
}

func LoggingMiddleware(config ...LoggingConfig) fiber.Handler {
	cfg := DefaultLoggingConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				return c.Next()
			}
		}

		ensureRequestID(c)
		ctx := c.UserContext()
		httpReq := convertFastHTTPRequest(c)

		start := time.Now()

		var requestBody []byte
		if cfg.LogRequestBody {
			requestBody = c.Body()
		}
		log.RequestStart(ctx, httpReq, requestBody)
		if len(requestBody) > 0 && len(requestBody) <= cfg.MaxBodyLogSize {
			log.Debugf(ctx, "Request body: %s", string(requestBody))
		}

		err := c.Next()

		responseTime := time.Since(start)
		responseStatusCode := c.Response().StatusCode()
		responseSize := len(c.Response().Body())

		if err != nil {
			log.ErrorWithStack(ctx, err, "Request handler error")

			var customErr *appError.CustomError
			var fiberErr *fiber.Error
			if errors.As(err, &customErr) {
				responseStatusCode = customErr.HTTPCode
			} else if errors.As(err, &fiberErr) {
				responseStatusCode = fiberErr.Code
			} else {
				responseStatusCode = fiber.StatusInternalServerError
			}
		}

		log.RequestEnd(ctx, httpReq, responseStatusCode, responseTime, responseSize)

		if cfg.LogResponseBody && responseSize > 0 && responseSize <= cfg.MaxBodyLogSize {
			log.Debugf(ctx, "Response body: %s", string(c.Response().Body()))
		}

		return err
	}
}

func RecoveryMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				ctx := c.UserContext()
				httpReq := convertFastHTTPRequest(c)
				log.PanicLog(ctx, httpReq, r)
				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":      "Internal server error",
					"request_id": c.Locals("request_id"),
				})
			}
		}()

		return c.Next()
	}
}

func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderXRequestID, ensureRequestID(c))
		return c.Next()
	}
}
