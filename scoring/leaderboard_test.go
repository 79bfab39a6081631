package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thahbeeb/artsfest-api/models"
)

func TestTallyPositionsAccumulatesPerTeam(t *testing.T) {
	scores := []models.Score{
		{Positions: []models.Position{
			{TeamID: 1, Points: 5},
			{TeamID: 2, Points: 3},
		}},
	}

	got := TallyPositions(scores)

	require.Len(t, got, 2)
	assert.Equal(t, TeamTally{TeamID: 1, TotalPoints: 5, Entries: 1}, got[0])
	assert.Equal(t, TeamTally{TeamID: 2, TotalPoints: 3, Entries: 1}, got[1])
}

func TestTallyPositionsCrossesScoreRecords(t *testing.T) {
	scores := []models.Score{
		{Positions: []models.Position{
			{TeamID: 1, Points: 10},
			{TeamID: 2, Points: 8},
		}},
		{Positions: []models.Position{
			{TeamID: 2, Points: 10},
			{TeamID: 1, Points: 6},
			{TeamID: 3, Points: 4},
		}},
	}

	got := TallyPositions(scores)

	require.Len(t, got, 3)
	// Team 2: 18 points over two entries, team 1: 16 over two, team 3: 4 over one.
	assert.Equal(t, TeamTally{TeamID: 2, TotalPoints: 18, Entries: 2}, got[0])
	assert.Equal(t, TeamTally{TeamID: 1, TotalPoints: 16, Entries: 2}, got[1])
	assert.Equal(t, TeamTally{TeamID: 3, TotalPoints: 4, Entries: 1}, got[2])
}

func TestTallyPositionsTiesKeepFirstSeenOrder(t *testing.T) {
	scores := []models.Score{
		{Positions: []models.Position{
			{TeamID: 7, Points: 5},
			{TeamID: 4, Points: 5},
		}},
	}

	got := TallyPositions(scores)

	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].TeamID)
	assert.Equal(t, 4, got[1].TeamID)
}

func TestTallyPositionsEmpty(t *testing.T) {
	assert.Empty(t, TallyPositions(nil))
	assert.Empty(t, TallyPositions([]models.Score{{Positions: nil}}))
}
