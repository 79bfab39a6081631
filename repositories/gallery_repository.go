package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thahbeeb/artsfest-api/models"
)

var ErrGalleryItemNotFound = errors.New("gallery item not found")

type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	GetByID(ctx context.Context, id int) (*models.GalleryItem, error)
	List(ctx context.Context) ([]models.GalleryItem, error)
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id int) error
}

type postgresGalleryRepository struct {
	db *sql.DB
}

func NewPostgresGalleryRepository(db *sql.DB) GalleryRepository {
	return &postgresGalleryRepository{db: db}
}

func (r *postgresGalleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (caption, type, category, object_key, file_name, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		item.Caption, item.Type, item.Category, item.ObjectKey, item.FileName, item.FileSize,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert gallery item: %w", err)
	}
	return nil
}

func (r *postgresGalleryRepository) scanGalleryItem(rowScanner interface{ Scan(...interface{}) error }) (*models.GalleryItem, error) {
	var g models.GalleryItem
	err := rowScanner.Scan(
		&g.ID, &g.Caption, &g.Type, &g.Category, &g.ObjectKey,
		&g.FileName, &g.FileSize, &g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGalleryItemNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGalleryRepository) GetByID(ctx context.Context, id int) (*models.GalleryItem, error) {
	query := `
		SELECT id, caption, type, category, object_key, file_name, file_size, created_at
		FROM gallery_items
		WHERE id = $1`
	return r.scanGalleryItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresGalleryRepository) List(ctx context.Context) ([]models.GalleryItem, error) {
	query := `
		SELECT id, caption, type, category, object_key, file_name, file_size, created_at
		FROM gallery_items
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.GalleryItem, 0)
	for rows.Next() {
		g, errScan := r.scanGalleryItem(rows)
		if errScan != nil {
			return nil, errScan
		}
		items = append(items, *g)
	}
	return items, rows.Err()
}

func (r *postgresGalleryRepository) Update(ctx context.Context, item *models.GalleryItem) error {
	query := `
		UPDATE gallery_items SET caption = $1, type = $2, category = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, item.Caption, item.Type, item.Category, item.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGalleryItemNotFound)
}

func (r *postgresGalleryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGalleryItemNotFound)
}
