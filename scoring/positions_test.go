package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thahbeeb/artsfest-api/models"
)

func TestFlexIntUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"number", `7`, 7},
		{"numeric string", `"12"`, 12},
		{"padded string", `" 3 "`, 3},
		{"float", `2.9`, 2},
		{"float string", `"4.0"`, 4},
		{"garbage string", `"first place"`, 0},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"negative", `-5`, -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexInt
			require.NoError(t, json.Unmarshal([]byte(tc.in), &f))
			assert.Equal(t, tc.want, int(f))
		})
	}
}

func TestValidatePositionsDropsEntriesWithoutTeam(t *testing.T) {
	name := "Asha"
	raw := []RawPosition{
		{TeamID: 4, ParticipantName: &name, Position: 1, Points: 10},
		{TeamID: 0, Position: 2, Points: 8}, // no team reference
		{TeamID: -3, Position: 3, Points: 6},
		{TeamID: 9, Position: 2, Points: 8},
	}

	got := ValidatePositions(raw)

	require.Len(t, got, 2)
	assert.Equal(t, 4, got[0].TeamID)
	assert.Equal(t, &name, got[0].ParticipantName)
	assert.Equal(t, 9, got[1].TeamID)
	assert.Equal(t, 2, got[1].Position)
}

func TestValidatePositionsPreservesOrderAndClampsPoints(t *testing.T) {
	raw := []RawPosition{
		{TeamID: 2, Position: 3, Points: -4},
		{TeamID: 1, Position: 1, Points: 10},
		{TeamID: 3}, // missing rank and points coerce to zero
	}

	got := ValidatePositions(raw)

	require.Len(t, got, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{got[0].TeamID, got[1].TeamID, got[2].TeamID})
	assert.Equal(t, 0, got[0].Points, "negative points clamp to zero")
	assert.Equal(t, 0, got[2].Position)
	assert.Equal(t, 0, got[2].Points)
}

func TestValidatePositionsEmpty(t *testing.T) {
	assert.Empty(t, ValidatePositions(nil))
	assert.Empty(t, ValidatePositions([]RawPosition{}))
}

func TestTotalPoints(t *testing.T) {
	positions := []models.Position{
		{TeamID: 1, Points: 5},
		{TeamID: 2, Points: 3},
		{TeamID: 1, Points: 0},
	}
	assert.Equal(t, 8, TotalPoints(positions))
	assert.Equal(t, 0, TotalPoints(nil))
}
