package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"geogate/internal/domain"
	logger "geogate/internal/shared/log"
)

// Submitter is the part of the submission service the handler needs.
type Submitter interface {
	HandleSubmission(ctx context.Context, payload []byte) (*domain.Receipt, error)
}

type SubmissionHandler struct {
	service Submitter
	timeout time.Duration
}

func NewSubmissionHandler(service Submitter) *SubmissionHandler {
	return &SubmissionHandler{service: service, timeout: 30 * time.Second}
}

// HandleSubmission is the HTTP adapter for POST /submissions. Every outcome,
// success or rejection, is written as {"statusCode": ..., "body": ...} with
// the same HTTP status.
func (h *SubmissionHandler) HandleSubmission(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	// fasthttp reuses the body buffer once the handler returns.
	payload := append([]byte(nil), c.Body()...)
	logger.Infof(ctx, "Received submission, body size: %d bytes", len(payload))

	receipt, err := h.service.HandleSubmission(ctx, payload)
	response := domain.Classify(receipt, err)
	if err != nil {
		logger.Warnf(ctx, "Submission rejected with %d: %v", response.StatusCode, err)
	} else {
		logger.Infof(ctx, "Submission accepted as %s in bucket %s", receipt.ObjectKey, receipt.Bucket)
	}

	return c.Status(response.StatusCode).JSON(response)
}
