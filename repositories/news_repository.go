package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thahbeeb/artsfest-api/models"
)

var ErrNewsNotFound = errors.New("news article not found")

type NewsRepository interface {
	Create(ctx context.Context, article *models.News) error
	GetByID(ctx context.Context, id int) (*models.News, error)
	List(ctx context.Context) ([]models.News, error)
	Update(ctx context.Context, article *models.News) error
	UpdateImageKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
}

type postgresNewsRepository struct {
	db *sql.DB
}

func NewPostgresNewsRepository(db *sql.DB) NewsRepository {
	return &postgresNewsRepository{db: db}
}

func (r *postgresNewsRepository) Create(ctx context.Context, article *models.News) error {
	query := `
		INSERT INTO news (title, content, category, priority, published_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING id, published_at, created_at, updated_at`

	var publishedAt interface{}
	if !article.PublishedAt.IsZero() {
		publishedAt = article.PublishedAt
	}

	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.Category, article.Priority, publishedAt,
	).Scan(&article.ID, &article.PublishedAt, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert news article: %w", err)
	}
	return nil
}

func (r *postgresNewsRepository) scanNews(rowScanner interface{ Scan(...interface{}) error }) (*models.News, error) {
	var n models.News
	err := rowScanner.Scan(
		&n.ID, &n.Title, &n.Content, &n.Category, &n.Priority,
		&n.ImageKey, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *postgresNewsRepository) GetByID(ctx context.Context, id int) (*models.News, error) {
	query := `
		SELECT id, title, content, category, priority, image_key, published_at, created_at, updated_at
		FROM news
		WHERE id = $1`
	return r.scanNews(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresNewsRepository) List(ctx context.Context) ([]models.News, error) {
	query := `
		SELECT id, title, content, category, priority, image_key, published_at, created_at, updated_at
		FROM news
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]models.News, 0)
	for rows.Next() {
		n, errScan := r.scanNews(rows)
		if errScan != nil {
			return nil, errScan
		}
		articles = append(articles, *n)
	}
	return articles, rows.Err()
}

func (r *postgresNewsRepository) Update(ctx context.Context, article *models.News) error {
	query := `
		UPDATE news SET
			title = $1, content = $2, category = $3, priority = $4, updated_at = NOW()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		article.Title, article.Content, article.Category, article.Priority, article.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func (r *postgresNewsRepository) UpdateImageKey(ctx context.Context, id int, key *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE news SET image_key = $1, updated_at = NOW() WHERE id = $2`, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}

func (r *postgresNewsRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrNewsNotFound)
}
