package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/thahbeeb/artsfest-api/live"
	"github.com/thahbeeb/artsfest-api/models"
	"github.com/thahbeeb/artsfest-api/repositories"
	"github.com/thahbeeb/artsfest-api/scoring"
)

// Display name substituted when a leaderboard row references a team that no
// longer resolves. A dangling reference is a display concern, not an error.
const teamNotFoundName = "Team Not Found"

// ScoreInput is the submission body for both create and full update.
type ScoreInput struct {
	ItemID       int                   `json:"item_id"`
	TeamID       *int                  `json:"team_id,omitempty"`
	Category     string                `json:"category"`
	IsGroupEvent bool                  `json:"is_group_event"`
	Positions    []scoring.RawPosition `json:"positions"`
	Remarks      *string               `json:"remarks,omitempty"`
	Published    *bool                 `json:"published,omitempty"`
}

type ListScoresInput struct {
	Category  string
	Published *bool
}

type BulkPublishInput struct {
	ScoreIDs  []int `json:"score_ids"`
	Published *bool `json:"published"`
}

type BulkPublishResult struct {
	Matched   int64 `json:"matched"`
	Modified  int64 `json:"modified"`
	Published bool  `json:"published"`
}

// ResultsFeed receives score change events for live spectators.
type ResultsFeed interface {
	Publish(eventType string, payload interface{})
}

type ScoreService interface {
	CreateScore(ctx context.Context, input ScoreInput) (*models.Score, error)
	UpdateScore(ctx context.Context, id int, input ScoreInput) (*models.Score, error)
	DeleteScore(ctx context.Context, id int) error
	ListScores(ctx context.Context, input ListScoresInput) ([]models.Score, error)
	BulkSetPublished(ctx context.Context, input BulkPublishInput) (*BulkPublishResult, error)
	TeamTotals(ctx context.Context, category string) ([]models.TeamTotal, error)
	TeamTotalsGroup(ctx context.Context) ([]models.TeamTotal, error)
}

type scoreService struct {
	db        *sql.DB
	scoreRepo repositories.ScoreRepository
	teamRepo  repositories.TeamRepository
	feed      ResultsFeed
	logger    *slog.Logger
}

func NewScoreService(
	db *sql.DB,
	scoreRepo repositories.ScoreRepository,
	teamRepo repositories.TeamRepository,
	feed ResultsFeed,
	logger *slog.Logger,
) ScoreService {
	return &scoreService{
		db:        db,
		scoreRepo: scoreRepo,
		teamRepo:  teamRepo,
		feed:      feed,
		logger:    logger,
	}
}

// applyScoringPipeline runs the normalize -> validate -> recompute pipeline
// on a score being written. Group events are scored per team, not per age
// category, so their category is cleared unconditionally. total_points is
// always the sum of the validated entries, never taken from the caller.
func applyScoringPipeline(score *models.Score, input ScoreInput) {
	score.IsGroupEvent = input.IsGroupEvent
	if input.IsGroupEvent {
		score.Category = ""
	} else {
		score.Category = scoring.NormalizeCategory(input.Category)
	}
	score.Positions = scoring.ValidatePositions(input.Positions)
	score.TotalPoints = scoring.TotalPoints(score.Positions)
}

func (s *scoreService) CreateScore(ctx context.Context, input ScoreInput) (*models.Score, error) {
	if input.ItemID <= 0 {
		return nil, ErrScoreItemRequired
	}

	score := &models.Score{
		ItemID:  input.ItemID,
		TeamID:  input.TeamID,
		Remarks: input.Remarks,
	}
	applyScoringPipeline(score, input)
	// New results start as drafts unless the caller opts in explicitly.
	if input.Published != nil {
		score.Published = *input.Published
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.scoreRepo.Create(ctx, tx, score); err != nil {
			return err
		}
		return s.scoreRepo.ReplacePositions(ctx, tx, score.ID, score.Positions)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create score: %w", err)
	}

	if score.Published {
		s.feed.Publish(live.EventScoreCreated, score)
	}
	return score, nil
}

func (s *scoreService) UpdateScore(ctx context.Context, id int, input ScoreInput) (*models.Score, error) {
	existing, err := s.scoreRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to load score %d: %w", id, err)
	}

	// Full replacement semantics: the incoming position list supersedes the
	// stored one entirely. item_id stays as created.
	score := *existing
	score.TeamID = input.TeamID
	score.Remarks = input.Remarks
	applyScoringPipeline(&score, input)
	if input.Published != nil {
		score.Published = *input.Published
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.scoreRepo.Update(ctx, tx, &score); err != nil {
			return err
		}
		return s.scoreRepo.ReplacePositions(ctx, tx, score.ID, score.Positions)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to update score %d: %w", id, err)
	}

	updated, err := s.scoreRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload score %d: %w", id, err)
	}

	// Spectators see the change if the result is, or just stopped being,
	// publicly visible.
	if updated.Published || existing.Published {
		s.feed.Publish(live.EventScoreUpdated, updated)
	}
	return updated, nil
}

// DeleteScore removes a result permanently. Deleting an id that does not
// exist reports success; operators clean up stale entries without caring
// whether someone else got there first.
func (s *scoreService) DeleteScore(ctx context.Context, id int) error {
	if err := s.scoreRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete score %d: %w", id, err)
	}
	s.feed.Publish(live.EventScoreDeleted, map[string]int{"id": id})
	return nil
}

func (s *scoreService) ListScores(ctx context.Context, input ListScoresInput) ([]models.Score, error) {
	filter := repositories.ListScoresFilter{Published: input.Published}
	if category := strings.TrimSpace(input.Category); category != "" && category != models.CategoryAll {
		filter.Category = &category
	}

	scores, err := s.scoreRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return scores, nil
}

func (s *scoreService) BulkSetPublished(ctx context.Context, input BulkPublishInput) (*BulkPublishResult, error) {
	// Publishing is the overwhelmingly common direction; an absent flag
	// means publish.
	published := true
	if input.Published != nil {
		published = *input.Published
	}

	matched, modified, err := s.scoreRepo.BulkSetPublished(ctx, input.ScoreIDs, published)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk set published: %w", err)
	}

	result := &BulkPublishResult{Matched: matched, Modified: modified, Published: published}
	if modified > 0 {
		s.feed.Publish(live.EventScoresPublished, result)
	}
	s.logger.Info("bulk publish applied",
		slog.Bool("published", published),
		slog.Int("targeted_ids", len(input.ScoreIDs)),
		slog.Int64("matched", matched),
		slog.Int64("modified", modified),
	)
	return result, nil
}

// TeamTotals computes individual-mode standings at position-entry
// granularity: every entry of every matching score credits its own team, so
// one score record can feed several teams. Scores and team names load
// concurrently; the scan is read-committed, not a snapshot, which is fine
// for an advisory leaderboard that refreshes constantly.
func (s *scoreService) TeamTotals(ctx context.Context, category string) ([]models.TeamTotal, error) {
	var (
		scores []models.Score
		teams  []models.Team
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scores, err = s.ListScores(gCtx, ListScoresInput{Category: category})
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load leaderboard inputs: %w", err)
	}

	return resolveTeamNames(scoring.TallyPositions(scores), teams), nil
}

// TeamTotalsGroup computes group-mode standings at score-record granularity:
// a group result is one team's single outcome, so the record's own team and
// total are summed directly instead of walking positions.
func (s *scoreService) TeamTotalsGroup(ctx context.Context) ([]models.TeamTotal, error) {
	var (
		tallies []scoring.TeamTally
		teams   []models.Team
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tallies, err = s.scoreRepo.GroupTotals(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load group leaderboard inputs: %w", err)
	}

	return resolveTeamNames(tallies, teams), nil
}

func resolveTeamNames(tallies []scoring.TeamTally, teams []models.Team) []models.TeamTotal {
	names := make(map[int]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	totals := make([]models.TeamTotal, 0, len(tallies))
	for _, tally := range tallies {
		name, ok := names[tally.TeamID]
		if !ok {
			name = teamNotFoundName
		}
		totals = append(totals, models.TeamTotal{
			TeamID:      tally.TeamID,
			TeamName:    name,
			TotalPoints: tally.TotalPoints,
			Entries:     tally.Entries,
		})
	}
	return totals
}

// withTx runs fn in a transaction so the score row and its position entries
// change together or not at all.
func (s *scoreService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
			}
		}
	}()

	if txErr = fn(tx); txErr != nil {
		return txErr
	}
	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit transaction: %w", txErr)
	}
	return nil
}
