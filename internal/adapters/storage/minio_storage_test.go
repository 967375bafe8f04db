package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMinIOStorage_Config(t *testing.T) {
	tests := []struct {
		name string
		cfg  MinIOConfig
	}{
		{name: "no bucket", cfg: MinIOConfig{Endpoint: "localhost:9000"}},
		{name: "endpoint with path", cfg: MinIOConfig{Endpoint: "localhost:9000/some/path", Bucket: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIOStorage(tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}
