package gate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
)

func TestCheckAccepts(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	tests := []struct {
		name     string
		in       AskInput
		question string
		filter   catalog.Filter
	}{
		{"default tone", AskInput{Question: "Will it work?"}, "Will it work?", catalog.FilterAll},
		{"explicit all", AskInput{Question: "abc", Tone: "all"}, "abc", catalog.FilterAll},
		{"negative", AskInput{Question: "  Should I go?  ", Tone: "negative"}, "Should I go?", catalog.FilterNegative},
		{"exactly max", AskInput{Question: strings.Repeat("x", 120)}, strings.Repeat("x", 120), catalog.FilterAll},
		{"multibyte counted as runes", AskInput{Question: "🌧🌧🌧"}, "🌧🌧🌧", catalog.FilterAll},
		{"leading NEL is content", AskInput{Question: "\u0085ab"}, "\u0085ab", catalog.FilterAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ask, err := g.Check(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.question, ask.Question)
			assert.Equal(t, tt.filter, ask.Filter)
		})
	}
}

func TestCheckRejects(t *testing.T) {
	g := NewGate(DefaultGateConfig())
	tests := []struct {
		name    string
		in      AskInput
		field   string
		message string
	}{
		{"too short", AskInput{Question: "hi"}, "question", msgTooShort},
		{"short after trim", AskInput{Question: "   ab    "}, "question", msgTooShort},
		{"blank", AskInput{Question: "      "}, "question", msgTooShort},
		{"too long", AskInput{Question: strings.Repeat("x", 121)}, "question", msgTooLong},
		{"unknown tone", AskInput{Question: "Will it work?", Tone: "ecstatic"}, "toneFilter", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Check(tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, verr.Message)
			}
		})
	}
}

func TestCheckCustomBounds(t *testing.T) {
	g := NewGate(GateConfig{MinQuestionRunes: 5, MaxQuestionRunes: 10})

	_, err := g.Check(AskInput{Question: "four"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5 characters")

	_, err = g.Check(AskInput{Question: "eleven runes"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 characters")
}
