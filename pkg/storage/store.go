package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// ErrNotDataURI is returned by DecodeDataURI for values that are plain
// references rather than inline payloads.
var ErrNotDataURI = errors.New("not a data URI")

// Store is an opaque content store. Put returns the reference under which
// data can later be read back with Get.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)
}

// New builds the store selected by config.Driver.
func New(config utils.StorageConfig, log *zap.Logger) (Store, error) {
	switch config.Driver {
	case "", "local":
		return NewLocalStore(config.Dir, log), nil
	case "cloudinary":
		return NewCloudinaryStore(config, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Driver)
	}
}

// DataURI is a decoded "data:<mime>;base64,<payload>" value.
type DataURI struct {
	MediaType string
	Data      []byte
}

// Extension is the file extension of the payload without the dot, "bin"
// when the media type is unknown.
func (d DataURI) Extension() string {
	switch strings.ToLower(d.MediaType) {
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/svg+xml":
		return "svg"
	}
	return "bin"
}

// IsDataURI reports whether value carries an inline payload.
func IsDataURI(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), "data:")
}

func DecodeDataURI(value string) (*DataURI, error) {
	value = strings.TrimSpace(value)
	if !IsDataURI(value) {
		return nil, ErrNotDataURI
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("data URI without payload")
	}

	mediaType, params, _ := strings.Cut(header, ";")
	if !strings.Contains(params, "base64") {
		return nil, fmt.Errorf("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URI payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("data URI payload is empty")
	}

	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return &DataURI{MediaType: mediaType, Data: data}, nil
}
