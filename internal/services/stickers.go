package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// StickerFolder is where custom sticker images live in Cloudinary.
const StickerFolder = "diary/stickers"

var ErrUploadsDisabled = errors.New("sticker uploads are not configured")

// StickerUploader turns an uploaded image into a URL a sticker can reference.
type StickerUploader struct {
	cld *cloudinary.Cloudinary
}

func NewStickerUploader(cloudName, apiKey, apiSecret string) (*StickerUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &StickerUploader{cld: cld}, nil
}

// Upload stores the image under a fresh public id and returns its secure URL.
func (s *StickerUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	if s == nil || s.cld == nil {
		return "", ErrUploadsDisabled
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	result, err := s.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		Folder:       StickerFolder,
		PublicID:     uuid.NewString(),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return result.SecureURL, nil
}
