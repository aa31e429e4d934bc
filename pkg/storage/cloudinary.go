package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"cinema-reservation/pkg/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStore uploads blobs to Cloudinary. References are the secure
// delivery URLs returned by the upload API.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	client *http.Client
	log    *zap.Logger
}

func NewCloudinaryStore(config utils.StorageConfig, log *zap.Logger) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(
		config.CloudinaryCloudName,
		config.CloudinaryAPIKey,
		config.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init failed: %w", err)
	}

	return &CloudinaryStore{
		cld:    cld,
		folder: config.CloudinaryFolder,
		client: http.DefaultClient,
		log:    log.With(zap.String("storage", "cloudinary")),
	}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	dir, file := path.Split(name)
	publicID := strings.TrimSuffix(file, path.Ext(file))

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       strings.Trim(path.Join(s.folder, dir), "/"),
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		s.log.Error("Failed to upload blob", zap.Error(err), zap.String("name", name))
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if result.Error.Message != "" {
		s.log.Error("Cloudinary rejected upload",
			zap.String("name", name),
			zap.String("reason", result.Error.Message),
		)
		return "", fmt.Errorf("upload %s: %s", name, result.Error.Message)
	}

	return result.SecureURL, nil
}

func (s *CloudinaryStore) Get(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", ref, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", ref, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
