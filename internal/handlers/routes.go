package handlers

import (
	"github.com/gofiber/fiber/v2"

	"geogate/internal/shared/middleware"
)

// RegisterRoutes wires all HTTP routes to their handlers. apiKey may be
// empty when a gateway in front of the service checks credentials.
func RegisterRoutes(app *fiber.App, service Submitter, apiKey string) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "geogate"})
	})

	submissionHandler := NewSubmissionHandler(service)
	app.Post("/submissions", middleware.APIKeyMiddleware(apiKey), submissionHandler.HandleSubmission)
}
