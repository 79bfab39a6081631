package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"exact junior", "Junior", "Junior"},
		{"lowercase senior", "senior", "Senior"},
		{"shouty junior", "JUNIOR BOYS", "Junior"},
		{"super senior spaced", "super senior", "Super-Senior"},
		{"super senior hyphen", "Super-Senior", "Super-Senior"},
		{"super senior odd spacing", "  SUPER   SENIOR ", "Super-Senior"},
		{"general", "General Quiz", "General"},
		{"senior wins over nothing", "Senior (Girls)", "Senior"},
		{"super without senior is passthrough", "Superb", "Superb"},
		{"unknown passthrough", "Sub-Junior", "Sub-Junior"},
		{"unrelated passthrough", "Open", "Open"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCategory(tc.raw))
		})
	}
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	inputs := []string{"", "junior", "SENIOR", "super senior", "general", "whatever", "Sub-Junior"}
	for _, raw := range inputs {
		once := NormalizeCategory(raw)
		assert.Equal(t, once, NormalizeCategory(once), "normalize(normalize(%q))", raw)
	}
}
