package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thahbeeb/artsfest-api/models"
	"github.com/thahbeeb/artsfest-api/repositories"
	"github.com/thahbeeb/artsfest-api/scoring"
)

type fakeScoreRepo struct {
	scores     map[int]*models.Score
	listResult []models.Score
	listFilter repositories.ListScoresFilter

	bulkIDs       []int
	bulkPublished bool
	bulkMatched   int64
	bulkModified  int64

	groupTotals []scoring.TeamTally
	deletedIDs  []int
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: make(map[int]*models.Score)}
}

func (f *fakeScoreRepo) Create(ctx context.Context, exec repositories.SQLExecutor, score *models.Score) error {
	score.ID = len(f.scores) + 1
	f.scores[score.ID] = score
	return nil
}

func (f *fakeScoreRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Score, error) {
	s, ok := f.scores[id]
	if !ok {
		return nil, repositories.ErrScoreNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeScoreRepo) List(ctx context.Context, filter repositories.ListScoresFilter) ([]models.Score, error) {
	f.listFilter = filter
	return f.listResult, nil
}

func (f *fakeScoreRepo) Update(ctx context.Context, exec repositories.SQLExecutor, score *models.Score) error {
	if _, ok := f.scores[score.ID]; !ok {
		return repositories.ErrScoreNotFound
	}
	f.scores[score.ID] = score
	return nil
}

func (f *fakeScoreRepo) Delete(ctx context.Context, id int) error {
	f.deletedIDs = append(f.deletedIDs, id)
	delete(f.scores, id)
	return nil
}

func (f *fakeScoreRepo) ReplacePositions(ctx context.Context, exec repositories.SQLExecutor, scoreID int, positions []models.Position) error {
	return nil
}

func (f *fakeScoreRepo) BulkSetPublished(ctx context.Context, ids []int, published bool) (int64, int64, error) {
	f.bulkIDs = ids
	f.bulkPublished = published
	return f.bulkMatched, f.bulkModified, nil
}

func (f *fakeScoreRepo) GroupTotals(ctx context.Context) ([]scoring.TeamTally, error) {
	return f.groupTotals, nil
}

type fakeTeamRepo struct {
	teams []models.Team
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error { return nil }
func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	for i := range f.teams {
		if f.teams[i].ID == id {
			return &f.teams[i], nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}
func (f *fakeTeamRepo) List(ctx context.Context) ([]models.Team, error)    { return f.teams, nil }
func (f *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error { return nil }
func (f *fakeTeamRepo) Delete(ctx context.Context, id int) error            { return nil }
func (f *fakeTeamRepo) UpdateMembersFileKey(ctx context.Context, exec repositories.SQLExecutor, teamID int, key *string) error {
	return nil
}
func (f *fakeTeamRepo) ReplaceParticipants(ctx context.Context, exec repositories.SQLExecutor, teamID int, participants []models.Participant) error {
	return nil
}
func (f *fakeTeamRepo) ListParticipants(ctx context.Context, teamID int) ([]models.Participant, error) {
	return nil, nil
}

type fakeFeed struct {
	events []string
}

func (f *fakeFeed) Publish(eventType string, payload interface{}) {
	f.events = append(f.events, eventType)
}

func newTestScoreService(scoreRepo *fakeScoreRepo, teamRepo *fakeTeamRepo, feed *fakeFeed) ScoreService {
	return NewScoreService(nil, scoreRepo, teamRepo, feed, slog.Default())
}

func boolPtr(v bool) *bool { return &v }

func TestApplyScoringPipeline(t *testing.T) {
	t.Run("normalizes category and recomputes total", func(t *testing.T) {
		score := &models.Score{TotalPoints: 999}
		applyScoringPipeline(score, ScoreInput{
			Category: "  senior boys ",
			Positions: []scoring.RawPosition{
				{TeamID: 1, Position: 1, Points: 10},
				{TeamID: 2, Position: 2, Points: 7},
				{TeamID: 0, Position: 3, Points: 5}, // no team, dropped
			},
		})

		assert.Equal(t, models.CategorySenior, score.Category)
		require.Len(t, score.Positions, 2)
		assert.Equal(t, 17, score.TotalPoints)
	})

	t.Run("group event clears category", func(t *testing.T) {
		score := &models.Score{}
		applyScoringPipeline(score, ScoreInput{
			Category:     "Senior",
			IsGroupEvent: true,
			Positions:    []scoring.RawPosition{{TeamID: 3, Position: 1, Points: 10}},
		})

		assert.True(t, score.IsGroupEvent)
		assert.Empty(t, score.Category)
		assert.Equal(t, 10, score.TotalPoints)
	})

	t.Run("unrecognized category passes through", func(t *testing.T) {
		score := &models.Score{}
		applyScoringPipeline(score, ScoreInput{Category: "Veterans"})
		assert.Equal(t, "Veterans", score.Category)
		assert.Zero(t, score.TotalPoints)
	})
}

func TestCreateScoreRequiresItem(t *testing.T) {
	svc := newTestScoreService(newFakeScoreRepo(), &fakeTeamRepo{}, &fakeFeed{})

	_, err := svc.CreateScore(context.Background(), ScoreInput{Category: "Junior"})
	assert.ErrorIs(t, err, ErrScoreItemRequired)
}

func TestUpdateScoreNotFound(t *testing.T) {
	svc := newTestScoreService(newFakeScoreRepo(), &fakeTeamRepo{}, &fakeFeed{})

	_, err := svc.UpdateScore(context.Background(), 42, ScoreInput{ItemID: 1})
	assert.ErrorIs(t, err, ErrScoreNotFound)
}

func TestDeleteScoreMissingIDSucceeds(t *testing.T) {
	repo := newFakeScoreRepo()
	feed := &fakeFeed{}
	svc := newTestScoreService(repo, &fakeTeamRepo{}, feed)

	err := svc.DeleteScore(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, []int{999}, repo.deletedIDs)
	assert.Contains(t, feed.events, "SCORE_DELETED")
}

func TestListScoresCategoryFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     *string
	}{
		{"specific category is forwarded", "Junior", func() *string { s := "Junior"; return &s }()},
		{"All means no filter", "All", nil},
		{"empty means no filter", "  ", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeScoreRepo()
			svc := newTestScoreService(repo, &fakeTeamRepo{}, &fakeFeed{})

			_, err := svc.ListScores(context.Background(), ListScoresInput{Category: tc.category})
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, repo.listFilter.Category)
			} else {
				require.NotNil(t, repo.listFilter.Category)
				assert.Equal(t, *tc.want, *repo.listFilter.Category)
			}
		})
	}
}

func TestBulkSetPublished(t *testing.T) {
	t.Run("defaults to publishing", func(t *testing.T) {
		repo := newFakeScoreRepo()
		repo.bulkMatched, repo.bulkModified = 3, 2
		feed := &fakeFeed{}
		svc := newTestScoreService(repo, &fakeTeamRepo{}, feed)

		result, err := svc.BulkSetPublished(context.Background(), BulkPublishInput{ScoreIDs: []int{1, 2, 3}})
		require.NoError(t, err)
		assert.True(t, repo.bulkPublished)
		assert.True(t, result.Published)
		assert.Equal(t, int64(3), result.Matched)
		assert.Equal(t, int64(2), result.Modified)
		assert.Contains(t, feed.events, "SCORES_PUBLISHED")
	})

	t.Run("explicit unpublish is honored", func(t *testing.T) {
		repo := newFakeScoreRepo()
		svc := newTestScoreService(repo, &fakeTeamRepo{}, &fakeFeed{})

		result, err := svc.BulkSetPublished(context.Background(), BulkPublishInput{Published: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, repo.bulkPublished)
		assert.False(t, result.Published)
	})

	t.Run("no broadcast when nothing changed", func(t *testing.T) {
		repo := newFakeScoreRepo()
		repo.bulkMatched, repo.bulkModified = 2, 0
		feed := &fakeFeed{}
		svc := newTestScoreService(repo, &fakeTeamRepo{}, feed)

		_, err := svc.BulkSetPublished(context.Background(), BulkPublishInput{ScoreIDs: []int{1, 2}})
		require.NoError(t, err)
		assert.Empty(t, feed.events)
	})
}

func TestTeamTotalsPositionGranularity(t *testing.T) {
	repo := newFakeScoreRepo()
	// One record crediting two teams plus a record for a team nobody knows.
	repo.listResult = []models.Score{
		{ID: 1, Positions: []models.Position{
			{TeamID: 1, Points: 10},
			{TeamID: 2, Points: 7},
		}},
		{ID: 2, Positions: []models.Position{
			{TeamID: 2, Points: 10},
			{TeamID: 99, Points: 5},
		}},
	}
	teams := &fakeTeamRepo{teams: []models.Team{
		{ID: 1, Name: "Red House"},
		{ID: 2, Name: "Blue House"},
	}}
	svc := newTestScoreService(repo, teams, &fakeFeed{})

	totals, err := svc.TeamTotals(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, totals, 3)

	assert.Equal(t, "Blue House", totals[0].TeamName)
	assert.Equal(t, 17, totals[0].TotalPoints)
	assert.Equal(t, 2, totals[0].Entries)
	assert.Equal(t, "Red House", totals[1].TeamName)
	assert.Equal(t, 10, totals[1].TotalPoints)
	assert.Equal(t, "Team Not Found", totals[2].TeamName)
	assert.Equal(t, 5, totals[2].TotalPoints)
}

func TestTeamTotalsGroupRecordGranularity(t *testing.T) {
	repo := newFakeScoreRepo()
	repo.groupTotals = []scoring.TeamTally{
		{TeamID: 2, TotalPoints: 25, Entries: 3},
		{TeamID: 7, TotalPoints: 10, Entries: 1},
	}
	teams := &fakeTeamRepo{teams: []models.Team{{ID: 2, Name: "Blue House"}}}
	svc := newTestScoreService(repo, teams, &fakeFeed{})

	totals, err := svc.TeamTotalsGroup(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "Blue House", totals[0].TeamName)
	assert.Equal(t, 25, totals[0].TotalPoints)
	assert.Equal(t, "Team Not Found", totals[1].TeamName)
}
