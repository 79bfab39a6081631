// Package scoring holds the pure result-processing core: category
// normalization, position validation and point aggregation. Nothing in here
// touches the database; services feed it raw submissions and persist what
// comes out.
package scoring

import (
	"strings"

	"github.com/thahbeeb/artsfest-api/models"
)

// NormalizeCategory maps a free-text category label onto the canonical set.
// Matching is case-insensitive substring matching, checked in priority order
// ("super senior" before "senior" before "junior"). Labels that match nothing
// are passed through unchanged rather than rejected: judges type these by
// hand and an unknown label is still more useful than a dropped one.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "super") && strings.Contains(lower, "senior"):
		return models.CategorySuperSenior
	case strings.Contains(lower, "general"):
		return models.CategoryGeneral
	case strings.Contains(lower, "senior"):
		return models.CategorySenior
	case strings.Contains(lower, "junior"):
		return models.CategoryJunior
	}
	return raw
}
