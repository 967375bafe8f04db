package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"geogate/internal/ports"
)

// dryRunDB builds statements without a server, capturing each INSERT. The
// default transaction is skipped because BeginTx would dial the database.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=geogate dbname=geogate sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	var statements []string
	err = db.Callback().Create().After("gorm:create").Register("test:capture", func(tx *gorm.DB) {
		statements = append(statements, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return db, &statements
}

func TestNewPostgresLedger_NilDB(t *testing.T) {
	_, err := NewPostgresLedger(nil)
	assert.Error(t, err)
}

func TestPostgresLedger_Record(t *testing.T) {
	db, statements := dryRunDB(t)
	l, err := NewPostgresLedger(db)
	require.NoError(t, err)

	err = l.Record(context.Background(), ports.SubmissionRecord{
		Name:         "Field1",
		Bucket:       "geojson-submissions",
		ObjectKey:    "Field1.geojson",
		SizeBytes:    128,
		FeatureCount: 1,
		RequestID:    "req-1",
		AcceptedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	assert.Contains(t, (*statements)[0], `INSERT INTO "submissions"`)
	assert.Contains(t, (*statements)[0], `"object_key"`)
	assert.Contains(t, (*statements)[0], `"feature_count"`)
}
