package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thahbeeb/artsfest-api/models"
)

var ErrItemNotFound = errors.New("item not found")

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id int) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id int) error
}

type postgresItemRepository struct {
	db *sql.DB
}

func NewPostgresItemRepository(db *sql.DB) ItemRepository {
	return &postgresItemRepository{db: db}
}

func (r *postgresItemRepository) Create(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (name, category, type, stage, stage_type, event_date, event_time, description, rules, prizes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Category, item.Type, item.Stage, item.StageType,
		item.EventDate, item.EventTime, item.Description, item.Rules, item.Prizes,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (r *postgresItemRepository) scanItem(rowScanner interface{ Scan(...interface{}) error }) (*models.Item, error) {
	var i models.Item
	err := rowScanner.Scan(
		&i.ID, &i.Name, &i.Category, &i.Type, &i.Stage, &i.StageType,
		&i.EventDate, &i.EventTime, &i.Description, &i.Rules, &i.Prizes,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *postgresItemRepository) GetByID(ctx context.Context, id int) (*models.Item, error) {
	query := `
		SELECT id, name, category, type, stage, stage_type, event_date, event_time, description, rules, prizes, created_at, updated_at
		FROM items
		WHERE id = $1`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresItemRepository) List(ctx context.Context) ([]models.Item, error) {
	query := `
		SELECT id, name, category, type, stage, stage_type, event_date, event_time, description, rules, prizes, created_at, updated_at
		FROM items
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		i, errScan := r.scanItem(rows)
		if errScan != nil {
			return nil, errScan
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}

func (r *postgresItemRepository) Update(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items SET
			name = $1, category = $2, type = $3, stage = $4, stage_type = $5,
			event_date = $6, event_time = $7, description = $8, rules = $9, prizes = $10,
			updated_at = NOW()
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Category, item.Type, item.Stage, item.StageType,
		item.EventDate, item.EventTime, item.Description, item.Rules, item.Prizes,
		item.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrItemNotFound)
}

func (r *postgresItemRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrItemNotFound)
}
