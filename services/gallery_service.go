package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/thahbeeb/artsfest-api/models"
	"github.com/thahbeeb/artsfest-api/repositories"
	"github.com/thahbeeb/artsfest-api/storage"
)

type GalleryInput struct {
	Caption  string                  `json:"caption"`
	Type     models.GalleryMediaType `json:"type"`
	Category string                  `json:"category"`
}

type GalleryUpload struct {
	FileName    string
	FileSize    int64
	ContentType string
	File        io.Reader
}

type GalleryService interface {
	CreateGalleryItem(ctx context.Context, input GalleryInput, upload GalleryUpload) (*models.GalleryItem, error)
	GetGalleryItemByID(ctx context.Context, id int) (*models.GalleryItem, error)
	ListGalleryItems(ctx context.Context) ([]models.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id int, input GalleryInput) (*models.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id int) error
}

type galleryService struct {
	galleryRepo repositories.GalleryRepository
	uploader    storage.FileUploader
	logger      *slog.Logger
}

func NewGalleryService(galleryRepo repositories.GalleryRepository, uploader storage.FileUploader, logger *slog.Logger) GalleryService {
	return &galleryService{
		galleryRepo: galleryRepo,
		uploader:    uploader,
		logger:      logger,
	}
}

func (s *galleryService) CreateGalleryItem(ctx context.Context, input GalleryInput, upload GalleryUpload) (*models.GalleryItem, error) {
	if strings.TrimSpace(input.Caption) == "" {
		return nil, ErrGalleryCaptionRequired
	}
	if upload.File == nil {
		return nil, ErrFileRequired
	}

	mediaType := input.Type
	if mediaType == "" {
		mediaType = models.GalleryMediaImage
	}

	key := fmt.Sprintf("gallery/%d%s", time.Now().UnixNano(), path.Ext(upload.FileName))
	if _, err := s.uploader.Upload(ctx, key, upload.ContentType, upload.File); err != nil {
		return nil, fmt.Errorf("failed to store gallery media: %w", err)
	}

	item := &models.GalleryItem{
		Caption:   strings.TrimSpace(input.Caption),
		Type:      mediaType,
		Category:  strings.TrimSpace(input.Category),
		ObjectKey: key,
	}
	if upload.FileName != "" {
		name := upload.FileName
		item.FileName = &name
	}
	if upload.FileSize > 0 {
		size := upload.FileSize
		item.FileSize = &size
	}

	if err := s.galleryRepo.Create(ctx, item); err != nil {
		// Best effort cleanup, the insert already failed.
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to delete orphaned gallery object",
				slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, fmt.Errorf("failed to create gallery item: %w", err)
	}

	s.populateURL(item)
	return item, nil
}

func (s *galleryService) GetGalleryItemByID(ctx context.Context, id int) (*models.GalleryItem, error) {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGalleryItemNotFound) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}
	s.populateURL(item)
	return item, nil
}

func (s *galleryService) ListGalleryItems(ctx context.Context) ([]models.GalleryItem, error) {
	items, err := s.galleryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery items: %w", err)
	}
	for i := range items {
		s.populateURL(&items[i])
	}
	return items, nil
}

func (s *galleryService) UpdateGalleryItem(ctx context.Context, id int, input GalleryInput) (*models.GalleryItem, error) {
	if strings.TrimSpace(input.Caption) == "" {
		return nil, ErrGalleryCaptionRequired
	}

	existing, err := s.GetGalleryItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Caption = strings.TrimSpace(input.Caption)
	existing.Category = strings.TrimSpace(input.Category)
	if input.Type != "" {
		existing.Type = input.Type
	}

	if err := s.galleryRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrGalleryItemNotFound) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, fmt.Errorf("failed to update gallery item %d: %w", id, err)
	}
	return existing, nil
}

func (s *galleryService) DeleteGalleryItem(ctx context.Context, id int) error {
	item, err := s.GetGalleryItemByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGalleryItemNotFound) {
			return ErrGalleryItemNotFound
		}
		return fmt.Errorf("failed to delete gallery item %d: %w", id, err)
	}

	if item.ObjectKey != "" {
		if err := s.uploader.Delete(ctx, item.ObjectKey); err != nil {
			s.logger.Warn("failed to delete gallery object from storage",
				slog.Int("gallery_id", id),
				slog.String("key", item.ObjectKey),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

func (s *galleryService) populateURL(item *models.GalleryItem) {
	if item == nil || item.ObjectKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(item.ObjectKey); url != "" {
		item.URL = &url
	}
}
