// Package replay drives recorded questions through an oracle and checks
// that every selection matches a golden fixture.
package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/oracle"
)

// #region types

const (
	ActionApplied  = "applied"
	ActionRejected = "rejected"
)

// Interaction is a single recorded question.
type Interaction struct {
	TurnID   string `json:"turn_id"`
	Question string `json:"question"`
	Tone     string `json:"tone"`
}

// ReplayResult captures the outcome of one interaction.
type ReplayResult struct {
	TurnID     string
	Action     string // "applied" | "rejected"
	Reason     string
	ResponseID string
	HistoryLen int
	Version    int64
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalTurns     int
	Applied        int
	Rejected       int
	HistoryLen     int
	ActiveQuestion string
}

// #endregion types

// #region run

// Run replays interactions in order against one session of o. Validation
// failures are recorded as rejected turns; any other error aborts the run.
func Run(ctx context.Context, o *oracle.Oracle, sessionID string, interactions []Interaction) ([]ReplayResult, Summary, error) {
	results := make([]ReplayResult, 0, len(interactions))
	summary := Summary{TotalTurns: len(interactions)}

	for _, in := range interactions {
		res, err := o.Ask(ctx, sessionID, gate.AskInput{Question: in.Question, Tone: in.Tone})

		var verr *gate.ValidationError
		switch {
		case errors.As(err, &verr):
			summary.Rejected++
			results = append(results, ReplayResult{
				TurnID: in.TurnID,
				Action: ActionRejected,
				Reason: verr.Error(),
			})
			continue
		case err != nil:
			return results, summary, fmt.Errorf("turn %s: %w", in.TurnID, err)
		}

		summary.Applied++
		summary.HistoryLen = len(res.State.History)
		summary.ActiveQuestion = res.State.Active.Question
		results = append(results, ReplayResult{
			TurnID:     in.TurnID,
			Action:     ActionApplied,
			Reason:     res.Reading.Response.Title,
			ResponseID: res.Reading.Response.ID,
			HistoryLen: len(res.State.History),
			Version:    res.Version,
		})
	}
	return results, summary, nil
}

// #endregion run
