package services

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryImageStore is the Cloudinary-backed ImageStore, used when
// CLOUDINARY_* credentials are configured. Images are addressed by
// public ID <folder>/<filename> so Exists and Remove work on the same
// sanitized filename the disk store uses.
type CloudinaryImageStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryImageStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryImageStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryImageStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryImageStore) publicID(filename string) string {
	return s.folder + "/" + filename
}

func (s *CloudinaryImageStore) Save(ctx context.Context, r io.Reader, filename string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:  s.publicID(filename),
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryImageStore) Exists(ctx context.Context, filename string) (bool, error) {
	result, err := s.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: s.publicID(filename)})
	if err != nil {
		return false, err
	}
	if result.Error.Message != "" {
		return false, nil
	}
	return true, nil
}

func (s *CloudinaryImageStore) Remove(ctx context.Context, filename string) error {
	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: s.publicID(filename)})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}
	if result.Result != "ok" {
		return fmt.Errorf("failed to delete from Cloudinary: %s", result.Result)
	}
	return nil
}
