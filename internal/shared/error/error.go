package error

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type CustomError struct {
	Message  string `json:"message"`
	Code     string `json:"code"`
	HTTPCode int    `json:"httpCode"`
	Details  any    `json:"details,omitempty"`
}

func (err *CustomError) Error() string {
	if err.Code != "" {
		return fmt.Sprintf("[%s] %s", err.Code, err.Message)
	}
	return err.Message
}

func (err *CustomError) Is(target error) bool {
	if targetErr, ok := target.(*CustomError); ok {
		return err.Code == targetErr.Code && err.Message == targetErr.Message && err.HTTPCode == targetErr.HTTPCode
	}
	return false
}

func NewCustomError(httpCode int, code, message string, details ...any) *CustomError {
	err := &CustomError{
		HTTPCode: httpCode,
		Code:     code,
		Message:  message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// GEOJSON_* and STORAGE_* messages are returned to clients verbatim as the
// response body, so they must not change.
var (
	ErrInvalidGeoJSON        = NewCustomError(400, "GEOJSON_4001", "400: Input is not a valid geojson")
	ErrMissingName           = NewCustomError(400, "GEOJSON_4002", "400: No name found for file. Please add one to crs/properties/name")
	ErrInvalidName           = NewCustomError(400, "GEOJSON_4003", "400: crs/properties/name has an invalid name. Please use alphanumeric characters")
	ErrNullCRSProperties     = NewCustomError(400, "GEOJSON_4004", "400: There are null values in crs/properties")
	ErrNullFeatureProperties = NewCustomError(400, "GEOJSON_4005", "400: There are null values in features/properties")

	ErrStorageWriteFailed = NewCustomError(500, "STORAGE_5001", "Data Failed to send to S3 Bucket. Check API token parameters.")

	ErrMissingAPIKey = NewCustomError(401, "AUTH_2001", "API key is required")
	ErrInvalidAPIKey = NewCustomError(403, "AUTH_2002", "Invalid API key")

	ErrHTTPInternalServer = NewCustomError(500, "HTTP_500", "Internal Server Error")
)

const (
	codeMissingDateField   = "GEOJSON_4006"
	codeMalformedDateField = "GEOJSON_4007"
)

// MissingDateField reports a feature that lacks one of the required date keys.
func MissingDateField(key string) *CustomError {
	return NewCustomError(400, codeMissingDateField, fmt.Sprintf("400: %s is required in feature properties", key))
}

// MalformedDateField reports a date key whose value is not YYYY-MM-DD.
func MalformedDateField(key string) *CustomError {
	return NewCustomError(400, codeMalformedDateField, fmt.Sprintf("400: %s in wrong format. Provide YYYY-MM-DD", key))
}

// ErrorHandler renders errors that escape a handler, such as auth failures,
// unknown routes or oversized bodies. Pipeline outcomes are rendered by the
// submission handler itself and never reach here.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		response := fiber.Map{"error": "Internal server error"}
		status := fiber.StatusInternalServerError

		var customErr *CustomError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &customErr):
			response = fiber.Map{
				"error":   customErr.Message,
				"code":    customErr.Code,
				"details": customErr.Details,
			}
			status = customErr.HTTPCode
		case errors.As(err, &fiberErr):
			response = fiber.Map{"error": fiberErr.Message}
			status = fiberErr.Code
		}

		if requestID := c.Locals("request_id"); requestID != nil {
			response["request_id"] = requestID
		}
		return c.Status(status).JSON(response)
	}
}
