package structurer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobrec/internal/apperr"
	"jobrec/internal/model"
)

type stubGenerator struct {
	out    string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     model.StructuredResume
		wantKind apperr.Kind
	}{
		{
			name: "prose around object and missing key",
			raw:  "Here is the result:\n{\"skills\":[\"Go\"],\"education\":\"BS\"}\nThanks",
			want: model.StructuredResume{Skills: []string{"Go"}, Education: "BS", Experience: ""},
		},
		{
			name: "markdown fence",
			raw:  "```json\n{\"skills\":[\"Go\",\"SQL\"],\"education\":\"MSc\",\"experience\":\"5 years\"}\n```",
			want: model.StructuredResume{Skills: []string{"Go", "SQL"}, Education: "MSc", Experience: "5 years"},
		},
		{
			name: "empty object defaults everything",
			raw:  "{}",
			want: model.StructuredResume{Skills: []string{}},
		},
		{
			name: "nulls default",
			raw:  `{"skills":null,"education":null,"experience":null,"extra":1}`,
			want: model.StructuredResume{Skills: []string{}},
		},
		{
			name:     "no braces",
			raw:      "I could not parse this resume.",
			wantKind: apperr.KindNoJSONFound,
		},
		{
			name:     "only opening brace",
			raw:      "{ not closed",
			wantKind: apperr.KindNoJSONFound,
		},
		{
			name:     "malformed",
			raw:      `{"skills": [}`,
			wantKind: apperr.KindInvalidJSON,
		},
		{
			name:     "greedy span covering two objects",
			raw:      `{"skills":["Go"]} and also {"skills":["Rust"]}`,
			wantKind: apperr.KindInvalidJSON,
		},
		{
			name:     "skills of wrong type",
			raw:      `{"skills":"Go, SQL"}`,
			wantKind: apperr.KindInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScrapeJSON(t *testing.T) {
	span, ok := ScrapeJSON("a {b} c {d} e")
	assert.True(t, ok)
	assert.Equal(t, "{b} c {d}", span)

	_, ok = ScrapeJSON("} backwards {")
	assert.False(t, ok)
}

func TestPrompt_TruncatesInput(t *testing.T) {
	long := strings.Repeat("a", MaxInputRunes) + "TAIL"

	p := Prompt(long)

	assert.Contains(t, p, "Strictly return output in raw JSON format")
	assert.Contains(t, p, strings.Repeat("a", MaxInputRunes))
	assert.NotContains(t, p, "TAIL")
}

func TestPrompt_TruncatesByRune(t *testing.T) {
	long := strings.Repeat("é", MaxInputRunes+5)

	p := Prompt(long)

	assert.Equal(t, MaxInputRunes, strings.Count(p, "é"))
}

func TestStructurer_Structure(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		gen := &stubGenerator{out: `{"skills":["Go"],"education":"BS","experience":"2 years"}`}

		got, err := New(gen).Structure(context.Background(), "resume text")

		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, got.Skills)
		assert.Contains(t, gen.prompt, "resume text")
	})

	t.Run("model failure", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("quota exceeded")}

		_, err := New(gen).Structure(context.Background(), "resume text")

		assert.Equal(t, apperr.KindDownstreamUnavailable, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("no json", func(t *testing.T) {
		_, err := New(&stubGenerator{out: "sorry"}).Structure(context.Background(), "x")

		assert.Equal(t, apperr.KindNoJSONFound, apperr.KindOf(err))
	})
}
