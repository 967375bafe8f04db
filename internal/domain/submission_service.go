package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"geogate/internal/ports"
	appError "geogate/internal/shared/error"
	logger "geogate/internal/shared/log"
)

// GeoJSONContentType is the content type accepted documents are stored with.
const GeoJSONContentType = "application/geo+json"

// SubmissionService validates uploaded feature collections and stores the
// accepted ones. Each call works on its own parsed document; the service
// holds no per-request state.
type SubmissionService struct {
	validator ports.SchemaValidator
	storage   ports.ObjectStorage
	publisher ports.EventPublisher
	ledger    ports.SubmissionLedger
}

// Receipt describes a stored submission.
type Receipt struct {
	Name         string
	Bucket       string
	ObjectKey    string
	FeatureCount int
}

type submissionEvent struct {
	Storage      string    `json:"storage"`
	Bucket       string    `json:"bucket"`
	ObjectKey    string    `json:"object_key"`
	Name         string    `json:"name"`
	FeatureCount int       `json:"feature_count"`
	RequestID    string    `json:"request_id,omitempty"`
	AcceptedAt   time.Time `json:"accepted_at"`
}

// NewSubmissionService constructs a SubmissionService. publisher and ledger
// are optional.
func NewSubmissionService(
	validator ports.SchemaValidator,
	storage ports.ObjectStorage,
	publisher ports.EventPublisher,
	ledger ports.SubmissionLedger,
) (*SubmissionService, error) {
	if validator == nil {
		return nil, errors.New("schema validator is required")
	}
	if storage == nil {
		return nil, errors.New("object storage is required")
	}
	return &SubmissionService{
		validator: validator,
		storage:   storage,
		publisher: publisher,
		ledger:    ledger,
	}, nil
}

// Validate runs the validation gates in order and returns the parsed
// document and its sanitized name. The first failing gate decides the error.
func (s *SubmissionService) Validate(ctx context.Context, payload []byte) (*Document, string, error) {
	logger.Info(ctx, "Step 1: Parsing payload")
	doc, err := ParseDocument(payload)
	if err != nil {
		logger.Warnf(ctx, "Payload is not valid JSON object: %v", err)
		return nil, "", err
	}

	logger.Info(ctx, "Step 2: Extracting name from crs/properties/name")
	name, err := ExtractName(doc)
	if err != nil {
		logger.Warnf(ctx, "Name extraction failed: %v", err)
		return nil, "", err
	}

	// Re-checks what the parser accepted against the FeatureCollection
	// schema. Parsing only proves the payload is a JSON object.
	logger.Infof(ctx, "Step 3: Validating structure of %q against schema", name)
	if err := s.validator.Validate(ctx, ports.SchemaFeatureCollection, payload); err != nil {
		logger.Warnf(ctx, "Schema validation failed: %v", err)
		return nil, "", appError.NewCustomError(
			appError.ErrInvalidGeoJSON.HTTPCode,
			appError.ErrInvalidGeoJSON.Code,
			appError.ErrInvalidGeoJSON.Message,
			err.Error(),
		)
	}

	logger.Info(ctx, "Step 4: Checking for null property values")
	if err := CheckNulls(doc); err != nil {
		logger.Warnf(ctx, "Null policy violated: %v", err)
		return nil, "", err
	}

	logger.Infof(ctx, "Step 5: Checking dates on %d features", len(doc.Features()))
	if err := CheckDates(doc); err != nil {
		logger.Warnf(ctx, "Date validation failed: %v", err)
		return nil, "", err
	}

	return doc, name, nil
}

// HandleSubmission validates payload and, if every gate passes, stores it
// unchanged as <name>.geojson. Nothing is stored on rejection.
func (s *SubmissionService) HandleSubmission(ctx context.Context, payload []byte) (receipt *Receipt, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, fmt.Errorf("panic recovered in HandleSubmission: %v", r), "recovered from panic")
			receipt = nil
			err = appError.NewCustomError(500, appError.ErrHTTPInternalServer.Code, appError.ErrHTTPInternalServer.Message, fmt.Sprintf("%v", r))
		}
	}()

	doc, name, err := s.Validate(ctx, payload)
	if err != nil {
		return nil, err
	}

	objectKey := ObjectKey(name)
	logger.Infof(ctx, "Step 6: Uploading document to object storage: %s", objectKey)
	storedKey, err := s.storage.Upload(ctx, objectKey, doc.Raw(), GeoJSONContentType)
	if err != nil {
		logger.Errorf(ctx, err, "Failed to upload document to object storage")
		return nil, appError.NewCustomError(
			appError.ErrStorageWriteFailed.HTTPCode,
			appError.ErrStorageWriteFailed.Code,
			appError.ErrStorageWriteFailed.Message,
			err.Error(),
		)
	}
	logger.Infof(ctx, "Successfully uploaded document, object_key: %s", storedKey)

	receipt = &Receipt{
		Name:         name,
		Bucket:       s.storage.GetBucket(),
		ObjectKey:    storedKey,
		FeatureCount: len(doc.Features()),
	}
	acceptedAt := time.Now().UTC()

	// The document is stored at this point; neither follow-up step can turn
	// the submission into a failure.
	s.record(ctx, receipt, int64(len(payload)), acceptedAt)
	s.publish(ctx, receipt, acceptedAt)

	return receipt, nil
}

func (s *SubmissionService) record(ctx context.Context, receipt *Receipt, size int64, acceptedAt time.Time) {
	if s.ledger == nil {
		return
	}
	err := s.ledger.Record(ctx, ports.SubmissionRecord{
		Name:         receipt.Name,
		Bucket:       receipt.Bucket,
		ObjectKey:    receipt.ObjectKey,
		SizeBytes:    size,
		FeatureCount: receipt.FeatureCount,
		RequestID:    logger.RequestID(ctx),
		AcceptedAt:   acceptedAt,
	})
	if err != nil {
		logger.Warnf(ctx, "Failed to record submission %s in ledger: %v", receipt.ObjectKey, err)
	}
}

func (s *SubmissionService) publish(ctx context.Context, receipt *Receipt, acceptedAt time.Time) {
	if s.publisher == nil {
		return
	}
	event, err := json.Marshal(submissionEvent{
		Storage:      "s3",
		Bucket:       receipt.Bucket,
		ObjectKey:    receipt.ObjectKey,
		Name:         receipt.Name,
		FeatureCount: receipt.FeatureCount,
		RequestID:    logger.RequestID(ctx),
		AcceptedAt:   acceptedAt,
	})
	if err != nil {
		logger.Warnf(ctx, "Failed to serialize submission event: %v", err)
		return
	}
	if err := s.publisher.Publish(ctx, []byte(receipt.Name), event); err != nil {
		logger.Warnf(ctx, "Failed to publish submission event for %s: %v", receipt.ObjectKey, err)
	}
}
