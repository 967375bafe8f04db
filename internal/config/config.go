package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	MaxBodyBytes int    `envconfig:"MAX_BODY_BYTES" default:"10485760"`
	// APIKey, when set, must be sent in the x-api-key header.
	APIKey string `envconfig:"API_KEY"`

	MinIOEndpoint  string `envconfig:"MINIO_ENDPOINT" required:"true"`
	MinIOAccessKey string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	MinIOSecretKey string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	MinIOUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	MinIOBucket    string `envconfig:"MINIO_BUCKET" default:"geojson-submissions"`

	// Optional. The submission ledger is disabled without it.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Optional. Submission events are dropped without brokers.
	KafkaBrokers         string `envconfig:"KAFKA_BROKERS"`
	KafkaSubmissionTopic string `envconfig:"KAFKA_SUBMISSION_TOPIC" default:"geojson.submission.accepted"`
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		fmt.Printf("Warning: error loading .env file: %v\n", err)
	}

	config := &Config{}

	err = envconfig.Process("", config)
	if err != nil {
		return nil, fmt.Errorf("error processing envconfig: %w", err)
	}
	if config.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", config.MaxBodyBytes)
	}

	return config, nil
}
