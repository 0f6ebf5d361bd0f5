package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/tamohar/foundationbackend/database"
	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/utils"
)

type MediaService struct {
	store     database.MediaStore
	objects   utils.ObjectStore
	validator *utils.FileValidator
	now       func() time.Time
}

func NewMediaService(store database.MediaStore, objects utils.ObjectStore, validator *utils.FileValidator) *MediaService {
	return &MediaService{
		store:     store,
		objects:   objects,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *MediaService) MaxUploadSize() int64 { return s.validator.MaxSize() }

// Upload validates an image, stores its bytes and records it in the media
// library. The object is removed again when the record cannot be saved.
func (s *MediaService) Upload(ctx context.Context, fh *multipart.FileHeader, caption, uploadedBy string) (*models.MediaAsset, error) {
	mimeType, err := s.validator.ValidateFile(fh)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUpload, err.Error())
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	now := s.now()
	objectName := utils.MediaObjectName(fh.Filename, now)
	url, err := s.objects.Put(ctx, objectName, file, fh.Size, mimeType)
	if err != nil {
		return nil, err
	}

	asset := &models.MediaAsset{
		URL:        url,
		ObjectName: objectName,
		FileName:   filepath.Base(fh.Filename),
		MimeType:   mimeType,
		SizeBytes:  fh.Size,
		Caption:    utils.CleanText(caption),
		UploadedBy: uploadedBy,
		CreatedAt:  now,
	}
	if err := s.store.Insert(ctx, asset); err != nil {
		if delErr := s.objects.Delete(ctx, objectName); delErr != nil {
			slog.Warn("orphaned media object", "object", objectName, "error", delErr)
		}
		return nil, err
	}
	return asset, nil
}

func (s *MediaService) List(ctx context.Context) ([]models.MediaAsset, error) {
	return s.store.List(ctx)
}

func (s *MediaService) Delete(ctx context.Context, id string) error {
	asset, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.objects.Delete(ctx, asset.ObjectName); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	return nil
}
