package scoring

import (
	"sort"

	"github.com/thahbeeb/artsfest-api/models"
)

// TeamTally is an accumulated leaderboard bucket before team names are
// resolved.
type TeamTally struct {
	TeamID      int
	TotalPoints int
	Entries     int
}

// TallyPositions accumulates per-team totals at position-entry granularity:
// every entry of every score contributes its points to the entry's team and
// bumps that team's entry count. A single score can feed several teams, which
// is exactly why individual standings cannot be grouped by score record.
// Sorted descending by points; ties keep first-seen order, there is no
// secondary tiebreak.
func TallyPositions(scores []models.Score) []TeamTally {
	byTeam := make(map[int]*TeamTally)
	order := make([]int, 0)

	for _, score := range scores {
		for _, pos := range score.Positions {
			tally, ok := byTeam[pos.TeamID]
			if !ok {
				tally = &TeamTally{TeamID: pos.TeamID}
				byTeam[pos.TeamID] = tally
				order = append(order, pos.TeamID)
			}
			tally.TotalPoints += pos.Points
			tally.Entries++
		}
	}

	result := make([]TeamTally, 0, len(order))
	for _, teamID := range order {
		result = append(result, *byTeam[teamID])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalPoints > result[j].TotalPoints
	})
	return result
}
