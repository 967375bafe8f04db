package di

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"geogate/internal/adapters/ledger"
	"geogate/internal/adapters/messaging"
	"geogate/internal/adapters/storage"
	"geogate/internal/adapters/validation"
	"geogate/internal/config"
	"geogate/internal/domain"
	"geogate/internal/ports"
	db "geogate/internal/shared/database"
	logger "geogate/internal/shared/log"
)

type Container struct {
	Config            *config.Config
	DB                *gorm.DB
	Publisher         ports.EventPublisher
	SubmissionService *domain.SubmissionService
}

func (c *Container) Shutdown(ctx context.Context) error {
	logger.Info(ctx, "Shutting down container resources...")

	if closer, ok := c.Publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error(ctx, err, "Failed to close Kafka publisher")
		}
	}

	if c.DB != nil {
		if err := db.Close(); err != nil {
			logger.Error(ctx, err, "Failed to close database connection")
		}
	}

	logger.Info(ctx, "Container shutdown complete")
	return nil
}

func InitContainer() (*Container, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)
	logger.Info(ctx, "Config loaded successfully")

	var database *gorm.DB
	var submissionLedger ports.SubmissionLedger
	if cfg.DatabaseURL != "" {
		logger.Info(ctx, "Initializing database...")
		database, err = db.Init(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		logger.Info(ctx, "Running database migrations...")
		if err := db.Migrate(database); err != nil {
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		logger.Info(ctx, "Database migrations completed successfully")

		submissionLedger, err = ledger.NewPostgresLedger(database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize submission ledger: %w", err)
		}
	} else {
		logger.Warn(ctx, "DATABASE_URL not set, submission ledger disabled")
	}

	logger.Info(ctx, "Initializing Kafka publisher...")
	publisher, err := messaging.NewKafkaPublisher(messaging.KafkaConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaSubmissionTopic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Kafka publisher: %w", err)
	}
	if _, noop := publisher.(messaging.NoopPublisher); noop {
		logger.Warn(ctx, "KAFKA_BROKERS not set, submission events disabled")
	}

	logger.Info(ctx, "Initializing schema validator...")
	schemaValidator, err := validation.NewJSONSchemaValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize schema validator: %w", err)
	}

	logger.Infof(ctx, "Initializing object storage, bucket %s...", cfg.MinIOBucket)
	objectStorage, err := storage.NewMinIOStorage(storage.MinIOConfig{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		UseSSL:    cfg.MinIOUseSSL,
		Bucket:    cfg.MinIOBucket,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	submissionService, err := domain.NewSubmissionService(
		schemaValidator,
		objectStorage,
		publisher,
		submissionLedger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SubmissionService: %w", err)
	}

	return &Container{
		Config:            cfg,
		DB:                database,
		Publisher:         publisher,
		SubmissionService: submissionService,
	}, nil
}
