package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil stays nil", nil, nil},
		{"blank labels are dropped", []string{"", "  "}, []string{}},
		{
			"repeated periods keep first position",
			[]string{"January to June 2026", " July to December 2025 ", "January to June 2026"},
			[]string{"January to June 2026", "July to December 2025"},
		},
		{"case is significant", []string{"Jan", "jan"}, []string{"Jan", "jan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.input))
		})
	}
}
