package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	appError "geogate/internal/shared/error"
	"geogate/internal/shared/log"
)

// APIKeyHeader is the header clients send their credential in.
const APIKeyHeader = "x-api-key"

// APIKeyMiddleware rejects requests whose x-api-key header does not match
// key. An empty key disables the check, leaving auth to a gateway in front.
func APIKeyMiddleware(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key == "" {
			return c.Next()
		}

		provided := c.Get(APIKeyHeader)
		if provided == "" {
			log.Warn(c.UserContext(), "Request without API key")
			return appError.ErrMissingAPIKey
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			log.Warn(c.UserContext(), "Request with invalid API key")
			return appError.ErrInvalidAPIKey
		}
		return c.Next()
	}
}
