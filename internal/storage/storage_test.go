package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"vidgate/internal/apperr"
	"vidgate/internal/config"
)

func TestContentType(t *testing.T) {
	tests := []struct {
		filePath string
		wantType string
	}{
		{"video.mp4", "video/mp4"},
		{"video.mov", "video/quicktime"},
		{"video.avi", "video/x-msvideo"},
		{"video.mkv", "video/x-matroska"},
		{"thumb.png", "image/png"},
		{"thumb.jpg", "image/jpeg"},
		{"thumb.JPEG", "image/jpeg"},
		{"label.txt", "text/plain"},
		{"unknown.xyz", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filePath, func(t *testing.T) {
			contentType := ContentType(tt.filePath)
			if contentType != tt.wantType {
				t.Errorf("ContentType(%q) = %q, want %q", tt.filePath, contentType, tt.wantType)
			}
		})
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{
			name: "missing access key",
			cfg:  config.StorageConfig{Endpoint: "localhost:9000", SecretAccessKey: "secret"},
		},
		{
			name: "missing secret key",
			cfg:  config.StorageConfig{Endpoint: "localhost:9000", AccessKeyID: "key"},
		},
		{
			name: "missing both",
			cfg:  config.StorageConfig{Endpoint: "localhost:9000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.cfg)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, apperr.ErrStoreCredentials)
		})
	}
}

func TestNewWithCredentials(t *testing.T) {
	client, err := New(config.StorageConfig{
		Endpoint:        "localhost:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		BucketName:      "videos",
		Region:          "us-east-1",
	})

	assert.NoError(t, err)
	assert.NotNil(t, client)
}
