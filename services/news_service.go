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

type NewsInput struct {
	Title       string              `json:"title"`
	Content     string              `json:"content"`
	Category    string              `json:"category"`
	Priority    models.NewsPriority `json:"priority"`
	PublishedAt *time.Time          `json:"published_at,omitempty"`
}

type NewsImageUpload struct {
	FileName    string
	ContentType string
	File        io.Reader
}

type NewsService interface {
	CreateNews(ctx context.Context, input NewsInput) (*models.News, error)
	GetNewsByID(ctx context.Context, id int) (*models.News, error)
	ListNews(ctx context.Context) ([]models.News, error)
	UpdateNews(ctx context.Context, id int, input NewsInput) (*models.News, error)
	DeleteNews(ctx context.Context, id int) error
	UploadImage(ctx context.Context, id int, upload NewsImageUpload) (*models.News, error)
}

type newsService struct {
	newsRepo repositories.NewsRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewNewsService(newsRepo repositories.NewsRepository, uploader storage.FileUploader, logger *slog.Logger) NewsService {
	return &newsService{
		newsRepo: newsRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *newsService) CreateNews(ctx context.Context, input NewsInput) (*models.News, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrNewsContentRequired
	}

	article := &models.News{
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Category: strings.TrimSpace(input.Category),
		Priority: input.Priority,
	}
	if article.Priority == "" {
		article.Priority = models.NewsPriorityNormal
	}
	if input.PublishedAt != nil {
		article.PublishedAt = *input.PublishedAt
	}

	if err := s.newsRepo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create news article: %w", err)
	}
	return article, nil
}

func (s *newsService) GetNewsByID(ctx context.Context, id int) (*models.News, error) {
	article, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	s.populateImageURL(article)
	return article, nil
}

func (s *newsService) ListNews(ctx context.Context) ([]models.News, error) {
	articles, err := s.newsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	for i := range articles {
		s.populateImageURL(&articles[i])
	}
	return articles, nil
}

func (s *newsService) UpdateNews(ctx context.Context, id int, input NewsInput) (*models.News, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrNewsContentRequired
	}

	article := &models.News{
		ID:       id,
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Category: strings.TrimSpace(input.Category),
		Priority: input.Priority,
	}
	if article.Priority == "" {
		article.Priority = models.NewsPriorityNormal
	}

	if err := s.newsRepo.Update(ctx, article); err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to update news article %d: %w", id, err)
	}
	return s.GetNewsByID(ctx, id)
}

func (s *newsService) DeleteNews(ctx context.Context, id int) error {
	article, err := s.GetNewsByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return ErrNewsNotFound
		}
		return fmt.Errorf("failed to delete news article %d: %w", id, err)
	}

	// The row is gone; a leaked object is only storage cost.
	if article.ImageKey != nil && *article.ImageKey != "" {
		if err := s.uploader.Delete(ctx, *article.ImageKey); err != nil {
			s.logger.Warn("failed to delete news image from storage",
				slog.Int("news_id", id),
				slog.String("key", *article.ImageKey),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

// UploadImage attaches a cover image, replacing and cleaning up any previous
// one.
func (s *newsService) UploadImage(ctx context.Context, id int, upload NewsImageUpload) (*models.News, error) {
	if upload.File == nil {
		return nil, ErrFileRequired
	}

	article, err := s.GetNewsByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("news/%d/cover_%d%s", id, time.Now().UnixNano(), path.Ext(upload.FileName))
	if _, err := s.uploader.Upload(ctx, key, upload.ContentType, upload.File); err != nil {
		return nil, fmt.Errorf("failed to store news image for article %d: %w", id, err)
	}

	if err := s.newsRepo.UpdateImageKey(ctx, id, &key); err != nil {
		if errors.Is(err, repositories.ErrNewsNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to record news image for article %d: %w", id, err)
	}

	if article.ImageKey != nil && *article.ImageKey != "" && *article.ImageKey != key {
		if err := s.uploader.Delete(ctx, *article.ImageKey); err != nil {
			s.logger.Warn("failed to delete replaced news image",
				slog.Int("news_id", id),
				slog.String("key", *article.ImageKey),
				slog.Any("error", err),
			)
		}
	}
	return s.GetNewsByID(ctx, id)
}

func (s *newsService) populateImageURL(article *models.News) {
	if article == nil || article.ImageKey == nil || *article.ImageKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*article.ImageKey); url != "" {
		article.ImageURL = &url
	}
}
