package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/thahbeeb/artsfest-api/models"
	"github.com/thahbeeb/artsfest-api/scoring"
)

var ErrScoreNotFound = errors.New("score not found")

// ListScoresFilter narrows List results. Nil fields mean "no filter".
type ListScoresFilter struct {
	Category  *string
	Published *bool
}

type ScoreRepository interface {
	Create(ctx context.Context, exec SQLExecutor, score *models.Score) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Score, error)
	List(ctx context.Context, filter ListScoresFilter) ([]models.Score, error)
	Update(ctx context.Context, exec SQLExecutor, score *models.Score) error
	Delete(ctx context.Context, id int) error
	ReplacePositions(ctx context.Context, exec SQLExecutor, scoreID int, positions []models.Position) error
	BulkSetPublished(ctx context.Context, ids []int, published bool) (matched, modified int64, err error)
	GroupTotals(ctx context.Context) ([]scoring.TeamTally, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresScoreRepository) Create(ctx context.Context, exec SQLExecutor, score *models.Score) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO scores (item_id, team_id, category, is_group_event, total_points, published, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		score.ItemID, score.TeamID, score.Category, score.IsGroupEvent,
		score.TotalPoints, score.Published, score.Remarks,
	).Scan(&score.ID, &score.CreatedAt, &score.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

func (r *postgresScoreRepository) scanScore(rowScanner interface{ Scan(...interface{}) error }) (*models.Score, error) {
	var s models.Score
	err := rowScanner.Scan(
		&s.ID, &s.ItemID, &s.TeamID, &s.Category, &s.IsGroupEvent,
		&s.TotalPoints, &s.Published, &s.Remarks, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresScoreRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Score, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, item_id, team_id, category, is_group_event, total_points, published, remarks, created_at, updated_at
		FROM scores
		WHERE id = $1`

	score, err := r.scanScore(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachPositions(ctx, executor, []*models.Score{score}); err != nil {
		return nil, err
	}
	return score, nil
}

func (r *postgresScoreRepository) List(ctx context.Context, filter ListScoresFilter) ([]models.Score, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT id, item_id, team_id, category, is_group_event, total_points, published, remarks, created_at, updated_at
		FROM scores
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", argID)
		args = append(args, *filter.Category)
		argID++
	}
	if filter.Published != nil {
		query += fmt.Sprintf(" AND published = $%d", argID)
		args = append(args, *filter.Published)
		argID++
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]*models.Score, 0)
	for rows.Next() {
		s, errScan := r.scanScore(rows)
		if errScan != nil {
			return nil, errScan
		}
		scores = append(scores, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachPositions(ctx, executor, scores); err != nil {
		return nil, err
	}

	result := make([]models.Score, len(scores))
	for i, s := range scores {
		result[i] = *s
	}
	return result, nil
}

// attachPositions loads the position entries for every given score in one
// query and assigns them in stored submission order.
func (r *postgresScoreRepository) attachPositions(ctx context.Context, executor SQLExecutor, scores []*models.Score) error {
	if len(scores) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(scores))
	byID := make(map[int]*models.Score, len(scores))
	for _, s := range scores {
		ids = append(ids, int64(s.ID))
		byID[s.ID] = s
		s.Positions = make([]models.Position, 0)
	}

	query := `
		SELECT id, score_id, team_id, participant_name, position, points
		FROM score_positions
		WHERE score_id = ANY($1)
		ORDER BY score_id, sort_order`

	rows, err := executor.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load score positions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Position
		if err := rows.Scan(&p.ID, &p.ScoreID, &p.TeamID, &p.ParticipantName, &p.Position, &p.Points); err != nil {
			return err
		}
		if score, ok := byID[p.ScoreID]; ok {
			score.Positions = append(score.Positions, p)
		}
	}
	return rows.Err()
}

func (r *postgresScoreRepository) Update(ctx context.Context, exec SQLExecutor, score *models.Score) error {
	executor := r.getExecutor(exec)
	// item_id is immutable after creation and deliberately absent here.
	query := `
		UPDATE scores SET
			team_id = $1, category = $2, is_group_event = $3,
			total_points = $4, published = $5, remarks = $6, updated_at = NOW()
		WHERE id = $7`

	result, err := executor.ExecContext(ctx, query,
		score.TeamID, score.Category, score.IsGroupEvent,
		score.TotalPoints, score.Published, score.Remarks, score.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreNotFound)
}

// Delete removes a score permanently. Deleting an id that does not exist is
// treated as success, matching the relaxed behavior the operators rely on.
func (r *postgresScoreRepository) Delete(ctx context.Context, id int) error {
	executor := r.getExecutor(nil)
	query := `DELETE FROM scores WHERE id = $1`
	_, err := executor.ExecContext(ctx, query, id)
	return err
}

func (r *postgresScoreRepository) ReplacePositions(ctx context.Context, exec SQLExecutor, scoreID int, positions []models.Position) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM score_positions WHERE score_id = $1`, scoreID); err != nil {
		return fmt.Errorf("failed to clear positions for score %d: %w", scoreID, err)
	}

	query := `
		INSERT INTO score_positions (score_id, team_id, participant_name, position, points, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	for i := range positions {
		positions[i].ScoreID = scoreID
		err := executor.QueryRowContext(ctx, query,
			scoreID, positions[i].TeamID, positions[i].ParticipantName,
			positions[i].Position, positions[i].Points, i,
		).Scan(&positions[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert position %d for score %d: %w", i, scoreID, err)
		}
	}
	return nil
}

// BulkSetPublished flips the published flag as a single set-based statement,
// so concurrent publish requests cannot interleave half-applied. With ids it
// targets exactly those records; without ids it targets every record whose
// flag differs from the requested state. matched counts the records the
// operation addressed, modified the records whose flag actually changed.
func (r *postgresScoreRepository) BulkSetPublished(ctx context.Context, ids []int, published bool) (int64, int64, error) {
	executor := r.getExecutor(nil)

	var matched, modified int64
	if len(ids) > 0 {
		idArr := make([]int64, len(ids))
		for i, id := range ids {
			idArr[i] = int64(id)
		}
		query := `
			WITH target AS (
				SELECT id, published FROM scores WHERE id = ANY($2)
			), updated AS (
				UPDATE scores s SET published = $1, updated_at = NOW()
				FROM target t
				WHERE s.id = t.id AND t.published <> $1
				RETURNING s.id
			)
			SELECT (SELECT COUNT(*) FROM target), (SELECT COUNT(*) FROM updated)`
		if err := executor.QueryRowContext(ctx, query, published, pq.Array(idArr)).Scan(&matched, &modified); err != nil {
			return 0, 0, fmt.Errorf("failed to bulk set published on %d scores: %w", len(ids), err)
		}
		return matched, modified, nil
	}

	query := `
		WITH updated AS (
			UPDATE scores SET published = $1, updated_at = NOW()
			WHERE published <> $1
			RETURNING id
		)
		SELECT COUNT(*) FROM updated`
	if err := executor.QueryRowContext(ctx, query, published).Scan(&modified); err != nil {
		return 0, 0, fmt.Errorf("failed to bulk set published: %w", err)
	}
	// Without explicit ids only differing records are addressed at all.
	return modified, modified, nil
}

// GroupTotals aggregates group-event scores at record granularity: one group
// score is one team's single outcome, so the record's own team and
// total_points are summed directly.
func (r *postgresScoreRepository) GroupTotals(ctx context.Context) ([]scoring.TeamTally, error) {
	executor := r.getExecutor(nil)
	query := `
		SELECT team_id, COALESCE(SUM(total_points), 0), COUNT(*)
		FROM scores
		WHERE is_group_event = TRUE AND team_id IS NOT NULL
		GROUP BY team_id
		ORDER BY SUM(total_points) DESC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]scoring.TeamTally, 0)
	for rows.Next() {
		var t scoring.TeamTally
		if err := rows.Scan(&t.TeamID, &t.TotalPoints, &t.Entries); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
