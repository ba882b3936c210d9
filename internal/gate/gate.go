package gate

import (
	"fmt"
	"unicode/utf8"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
	"github.com/danielpatrickdp/magic-orb/internal/selector"
)

const (
	msgTooShort = "Ask something meaningful—three characters or more, please."
	msgTooLong  = "Keep it short and cosmic. 120 characters is plenty."
)

// #region gate
// Gate rejects requests that would break the selector's preconditions.
type Gate struct {
	config GateConfig
}

// NewGate creates a gate with the given configuration.
func NewGate(config GateConfig) *Gate {
	return &Gate{config: config}
}

// Check trims the question, enforces the length window and parses the tone
// filter. The first failing field is reported.
func (g *Gate) Check(in AskInput) (Ask, error) {
	question := selector.Normalize(in.Question)
	n := utf8.RuneCountInString(question)

	if n < g.config.MinQuestionRunes {
		return Ask{}, &ValidationError{Field: "question", Message: g.tooShort()}
	}
	if n > g.config.MaxQuestionRunes {
		return Ask{}, &ValidationError{Field: "question", Message: g.tooLong()}
	}

	filter, err := catalog.ParseFilter(in.Tone)
	if err != nil {
		return Ask{}, &ValidationError{Field: "toneFilter", Message: err.Error()}
	}

	return Ask{Question: question, Filter: filter}, nil
}

// #endregion gate

// #region messages
func (g *Gate) tooShort() string {
	if g.config.MinQuestionRunes == DefaultGateConfig().MinQuestionRunes {
		return msgTooShort
	}
	return fmt.Sprintf("Ask something meaningful: %d characters or more, please.", g.config.MinQuestionRunes)
}

func (g *Gate) tooLong() string {
	if g.config.MaxQuestionRunes == DefaultGateConfig().MaxQuestionRunes {
		return msgTooLong
	}
	return fmt.Sprintf("Keep it short and cosmic. %d characters is plenty.", g.config.MaxQuestionRunes)
}

// #endregion messages
