package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	SessionID       string                  `json:"session_id"`
	Interactions    []Interaction           `json:"interactions"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
	ExpectedFinal   *FixtureExpectedFinal   `json:"expected_final,omitempty"`
}

// FixtureExpectedResult captures the expected outcome per turn.
// ResponseID is only checked for applied turns.
type FixtureExpectedResult struct {
	TurnID     string `json:"turn_id"`
	Action     string `json:"action"`
	ResponseID string `json:"response_id,omitempty"`
}

// FixtureExpectedFinal captures the expected session state after the last turn.
type FixtureExpectedFinal struct {
	HistoryLen     int    `json:"history_len"`
	ActiveQuestion string `json:"active_question"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and validates a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Interactions) == 0 {
		return nil, fmt.Errorf("fixture %s has no interactions", path)
	}
	seen := make(map[string]bool, len(f.Interactions))
	for i, in := range f.Interactions {
		if in.TurnID == "" {
			return nil, fmt.Errorf("fixture %s: interaction %d has no turn_id", path, i)
		}
		if seen[in.TurnID] {
			return nil, fmt.Errorf("fixture %s: duplicate turn_id %q", path, in.TurnID)
		}
		seen[in.TurnID] = true
	}
	if f.SessionID == "" {
		f.SessionID = "replay"
	}
	return &f, nil
}

// #endregion load

// #region check

// Mismatch describes one turn whose outcome differed from the fixture.
type Mismatch struct {
	TurnID string
	Field  string
	Want   string
	Got    string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s want %q got %q", m.TurnID, m.Field, m.Want, m.Got)
}

// Check compares replay output with the fixture expectations.
func (f *Fixture) Check(results []ReplayResult, final Summary) []Mismatch {
	byTurn := make(map[string]ReplayResult, len(results))
	for _, r := range results {
		byTurn[r.TurnID] = r
	}

	var out []Mismatch
	for _, exp := range f.ExpectedResults {
		got, ok := byTurn[exp.TurnID]
		if !ok {
			out = append(out, Mismatch{TurnID: exp.TurnID, Field: "turn", Want: "present", Got: "missing"})
			continue
		}
		if got.Action != exp.Action {
			out = append(out, Mismatch{TurnID: exp.TurnID, Field: "action", Want: exp.Action, Got: got.Action})
			continue
		}
		if exp.Action == ActionApplied && exp.ResponseID != "" && got.ResponseID != exp.ResponseID {
			out = append(out, Mismatch{TurnID: exp.TurnID, Field: "response_id", Want: exp.ResponseID, Got: got.ResponseID})
		}
	}

	if f.ExpectedFinal != nil {
		if final.HistoryLen != f.ExpectedFinal.HistoryLen {
			out = append(out, Mismatch{TurnID: "final", Field: "history_len",
				Want: fmt.Sprint(f.ExpectedFinal.HistoryLen), Got: fmt.Sprint(final.HistoryLen)})
		}
		if final.ActiveQuestion != f.ExpectedFinal.ActiveQuestion {
			out = append(out, Mismatch{TurnID: "final", Field: "active_question",
				Want: f.ExpectedFinal.ActiveQuestion, Got: final.ActiveQuestion})
		}
	}
	return out
}

// #endregion check
