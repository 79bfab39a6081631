package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thahbeeb/artsfest-api/models"
	"github.com/thahbeeb/artsfest-api/repositories"
)

type ItemInput struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Type        models.ItemType  `json:"type"`
	Stage       *string          `json:"stage,omitempty"`
	StageType   models.StageType `json:"stage_type"`
	EventDate   *time.Time       `json:"event_date,omitempty"`
	EventTime   string           `json:"event_time"`
	Description *string          `json:"description,omitempty"`
	Rules       *string          `json:"rules,omitempty"`
	Prizes      *string          `json:"prizes,omitempty"`
}

type ItemService interface {
	CreateItem(ctx context.Context, input ItemInput) (*models.Item, error)
	GetItemByID(ctx context.Context, id int) (*models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	UpdateItem(ctx context.Context, id int, input ItemInput) (*models.Item, error)
	DeleteItem(ctx context.Context, id int) error
}

type itemService struct {
	itemRepo repositories.ItemRepository
}

func NewItemService(itemRepo repositories.ItemRepository) ItemService {
	return &itemService{itemRepo: itemRepo}
}

func buildItem(input ItemInput) *models.Item {
	itemType := input.Type
	if itemType == "" {
		itemType = models.ItemTypeSolo
	}
	stageType := input.StageType
	if stageType == "" {
		stageType = models.StageTypeStage
	}
	return &models.Item{
		Name:        strings.TrimSpace(input.Name),
		Category:    strings.TrimSpace(input.Category),
		Type:        itemType,
		Stage:       input.Stage,
		StageType:   stageType,
		EventDate:   input.EventDate,
		EventTime:   input.EventTime,
		Description: input.Description,
		Rules:       input.Rules,
		Prizes:      input.Prizes,
	}
}

func (s *itemService) CreateItem(ctx context.Context, input ItemInput) (*models.Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrItemNameRequired
	}

	item := buildItem(input)
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

func (s *itemService) GetItemByID(ctx context.Context, id int) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int, input ItemInput) (*models.Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrItemNameRequired
	}

	item := buildItem(input)
	item.ID = id
	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update item %d: %w", id, err)
	}
	return s.GetItemByID(ctx, id)
}

func (s *itemService) DeleteItem(ctx context.Context, id int) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return nil
}
