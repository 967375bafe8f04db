package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"geogate/internal/ports"
)

// Submission is the ledger row for one accepted document.
type Submission struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Bucket       string    `gorm:"not null"`
	ObjectKey    string    `gorm:"not null;index:idx_submissions_object_key"`
	SizeBytes    int64     `gorm:"not null"`
	FeatureCount int       `gorm:"not null"`
	RequestID    string
	AcceptedAt   time.Time `gorm:"not null"`
}

func (Submission) TableName() string {
	return "submissions"
}

// PostgresLedger implements ports.SubmissionLedger with gorm.
type PostgresLedger struct {
	db *gorm.DB
}

func NewPostgresLedger(db *gorm.DB) (ports.SubmissionLedger, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	return &PostgresLedger{db: db}, nil
}

func (l *PostgresLedger) Record(ctx context.Context, rec ports.SubmissionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	row := Submission{
		ID:           uuid.New(),
		Name:         rec.Name,
		Bucket:       rec.Bucket,
		ObjectKey:    rec.ObjectKey,
		SizeBytes:    rec.SizeBytes,
		FeatureCount: rec.FeatureCount,
		RequestID:    rec.RequestID,
		AcceptedAt:   rec.AcceptedAt,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert submission %s: %w", rec.ObjectKey, err)
	}
	return nil
}
