package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/lshigami/ojtportal/config"
	"github.com/rs/zerolog/log"
)

// SignatureFile is an uploaded signature image as received from the client.
type SignatureFile struct {
	Reader   io.Reader
	Filename string
	Size     int64
}

// SignatureStorage persists signature images and returns their public URL.
type SignatureStorage interface {
	Upload(ctx context.Context, file *SignatureFile, folder string) (string, error)
}

var errStorageNotConfigured = errors.New("signature storage is not configured")

type cloudinaryStorage struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cfg *config.Config) (SignatureStorage, error) {
	c := cfg.Cloudinary
	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		log.Warn().Msg("CLOUDINARY_* is not set. Signature uploads will fail.")
		return &cloudinaryStorage{folder: c.Folder}, nil
	}
	client, err := cloudinary.NewFromParams(c.CloudName, c.APIKey, c.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary client: %w", err)
	}
	return &cloudinaryStorage{client: client, folder: c.Folder}, nil
}

func (s *cloudinaryStorage) Upload(ctx context.Context, file *SignatureFile, folder string) (string, error) {
	if s.client == nil {
		return "", errStorageNotConfigured
	}
	params := uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       path.Join(s.folder, folder),
		ResourceType: "image",
		Overwrite:    api.Bool(false),
	}
	result, err := s.client.Upload.Upload(ctx, file.Reader, params)
	if err != nil {
		return "", fmt.Errorf("upload signature %q: %w", file.Filename, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload signature %q: %s", file.Filename, result.Error.Message)
	}
	log.Info().Str("url", result.SecureURL).Int64("bytes", file.Size).Msg("Signature uploaded")
	return result.SecureURL, nil
}
