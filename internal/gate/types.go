package gate

import "github.com/danielpatrickdp/magic-orb/internal/catalog"

// #region gate-config
// GateConfig holds the question length bounds, counted in runes after trimming.
type GateConfig struct {
	MinQuestionRunes int `yaml:"min_question_runes"`
	MaxQuestionRunes int `yaml:"max_question_runes"`
}

// DefaultGateConfig returns the 3 to 120 rune window.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		MinQuestionRunes: 3,
		MaxQuestionRunes: 120,
	}
}

// #endregion gate-config

// #region ask-input
// AskInput is a raw request as it arrives from a host.
type AskInput struct {
	Question string
	Tone     string // "" means all
}

// Ask is a request that passed the gate.
type Ask struct {
	Question string // trimmed
	Filter   catalog.Filter
}

// #endregion ask-input

// #region validation-error
// ValidationError describes an input rejected at the boundary.
type ValidationError struct {
	Field   string // "question" | "toneFilter"
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// #endregion validation-error
