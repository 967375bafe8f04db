package ports

import (
	"context"
	"time"
)

// SchemaValidator checks a raw payload against a named JSON Schema.
type SchemaValidator interface {
	Validate(ctx context.Context, schema string, payload []byte) error
}

// ObjectStorage uploads a payload under objectName and returns the key it
// was stored at.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
	GetBucket() string
}

// EventPublisher defines a port for sending events/messages
// (e.g. Kafka).
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// SubmissionRecord is the metadata kept about an accepted document. The
// document itself lives only in object storage.
type SubmissionRecord struct {
	Name         string
	Bucket       string
	ObjectKey    string
	SizeBytes    int64
	FeatureCount int
	RequestID    string
	AcceptedAt   time.Time
}

// SubmissionLedger records accepted submissions.
type SubmissionLedger interface {
	Record(ctx context.Context, rec SubmissionRecord) error
}

// SchemaFeatureCollection names the GeoJSON FeatureCollection schema.
const SchemaFeatureCollection = "feature_collection"
