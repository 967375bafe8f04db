package domain

import (
	"errors"
	"fmt"
	"net/http"

	appError "geogate/internal/shared/error"
)

// Response is the status and message pair returned for every submission.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Classify maps the outcome of HandleSubmission to a Response. Pipeline
// errors carry their client-facing message; anything else is a 500.
func Classify(receipt *Receipt, err error) Response {
	if err == nil {
		return Response{
			StatusCode: http.StatusOK,
			Body:       fmt.Sprintf("Submission Accepted as %s in bucket", receipt.ObjectKey),
		}
	}

	var customErr *appError.CustomError
	if errors.As(err, &customErr) {
		return Response{StatusCode: customErr.HTTPCode, Body: customErr.Message}
	}
	return Response{
		StatusCode: appError.ErrHTTPInternalServer.HTTPCode,
		Body:       appError.ErrHTTPInternalServer.Message,
	}
}
