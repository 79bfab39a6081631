package scoring

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/thahbeeb/artsfest-api/models"
)

// FlexInt decodes JSON numbers as well as numeric strings, and coerces
// anything unparseable to 0. Rank and point values arrive from spreadsheets
// and manual entry, so "3", 3 and 3.0 all have to mean the same thing.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			*f = 0
			return nil
		}
		s = strings.TrimSpace(quoted)
	}
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int(fl))
		return nil
	}
	*f = 0
	return nil
}

// RawPosition is a submitted rank entry before validation.
type RawPosition struct {
	TeamID          FlexInt `json:"team_id"`
	ParticipantName *string `json:"participant_name,omitempty"`
	Position        FlexInt `json:"position"`
	Points          FlexInt `json:"points"`
}

// ValidatePositions filters a submitted entry list down to well-formed
// records, preserving input order. Entries without a resolvable team
// reference are dropped silently: a missing team id is a data-entry mistake,
// not something the judge can retry, and partial-but-plausible submissions
// are accepted rather than rejected wholesale. Points are clamped to be
// non-negative. The function is total; there is no error path.
func ValidatePositions(raw []RawPosition) []models.Position {
	out := make([]models.Position, 0, len(raw))
	for _, entry := range raw {
		if entry.TeamID <= 0 {
			continue
		}
		points := int(entry.Points)
		if points < 0 {
			points = 0
		}
		out = append(out, models.Position{
			TeamID:          int(entry.TeamID),
			ParticipantName: entry.ParticipantName,
			Position:        int(entry.Position),
			Points:          points,
		})
	}
	return out
}

// TotalPoints sums the points of validated entries. Stored total_points is
// always this sum; it is recomputed on every write and never settable on its
// own.
func TotalPoints(positions []models.Position) int {
	total := 0
	for _, p := range positions {
		total += p.Points
	}
	return total
}
