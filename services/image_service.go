package services

import (
	"context"
	"strings"

	apperrors "hotelbooking/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageStore hosts images and returns their public URL. file is anything the
// Cloudinary uploader accepts: a data URI, a URL, a path or an io.Reader.
type ImageStore interface {
	Upload(ctx context.Context, file interface{}, folder string) (string, error)
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary) *CloudinaryStore {
	return &CloudinaryStore{cld: cld}
}

func (s *CloudinaryStore) Upload(ctx context.Context, file interface{}, folder string) (string, error) {
	if s == nil || s.cld == nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeUpstream, "Image storage is not configured", nil)
	}
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeUpstream, "Upload thất bại", err)
	}
	if resp.Error.Message != "" {
		return "", apperrors.NewAppError(apperrors.ErrCodeUpstream, resp.Error.Message, nil)
	}
	return resp.SecureURL, nil
}

func IsImagePayload(value string) bool {
	return strings.HasPrefix(value, "data:image/")
}

// ResolveImage uploads base64 image payloads and passes hosted URLs through.
func ResolveImage(ctx context.Context, store ImageStore, value, folder string) (string, error) {
	value = strings.TrimSpace(value)
	if !IsImagePayload(value) {
		return value, nil
	}
	if store == nil {
		return "", apperrors.NewAppError(apperrors.ErrCodeUpstream, "Image storage is not configured", nil)
	}
	return store.Upload(ctx, value, folder)
}
