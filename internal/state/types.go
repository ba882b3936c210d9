package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
)

// HistoryLimit caps the number of readings a session retains.
const HistoryLimit = 12

// #region timestamp
// TimestampLayout is fixed width and always UTC, so formatted timestamps sort
// lexicographically in creation order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp reads a TimestampLayout string. RFC 3339 input is accepted
// as well so that ISO-8601 strings from other hosts load.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// #endregion timestamp

// #region reading-record
// ReadingRecord is one produced reading. It is never mutated after creation.
type ReadingRecord struct {
	ID        string                `json:"id"`
	Question  string                `json:"question"`
	Response  catalog.ResponseEntry `json:"response"`
	Timestamp time.Time             `json:"timestamp"`
}

// #endregion reading-record

// #region application-state
// Phase is the logical state of a session.
type Phase string

const (
	PhaseEmpty       Phase = "empty"
	PhaseHasReadings Phase = "has_readings"
)

// ApplicationState is the per-session view: most-recent-first history plus
// the active reading. Active, when set, is always History[0].
type ApplicationState struct {
	History []ReadingRecord `json:"history"`
	Active  *ReadingRecord  `json:"activeReading"`
}

// Empty returns the initial state.
func Empty() ApplicationState {
	return ApplicationState{History: []ReadingRecord{}}
}

// IsEmpty reports whether no reading has been applied yet.
func (s ApplicationState) IsEmpty() bool {
	return s.Active == nil && len(s.History) == 0
}

// Phase returns PhaseEmpty before the first reading and PhaseHasReadings after.
func (s ApplicationState) Phase() Phase {
	if s.IsEmpty() {
		return PhaseEmpty
	}
	return PhaseHasReadings
}

// ErrInconsistentState is returned for states breaking the active/head or
// length invariants.
var ErrInconsistentState = errors.New("inconsistent application state")

// Validate checks the invariants every stored state must satisfy.
func (s ApplicationState) Validate() error {
	if len(s.History) > HistoryLimit {
		return fmt.Errorf("%w: history length %d exceeds %d", ErrInconsistentState, len(s.History), HistoryLimit)
	}
	switch {
	case s.Active == nil && len(s.History) > 0:
		return fmt.Errorf("%w: history without active reading", ErrInconsistentState)
	case s.Active != nil && len(s.History) == 0:
		return fmt.Errorf("%w: active reading %s missing from history", ErrInconsistentState, s.Active.ID)
	case s.Active != nil && s.History[0].ID != s.Active.ID:
		return fmt.Errorf("%w: active reading %s is not history head %s", ErrInconsistentState, s.Active.ID, s.History[0].ID)
	}
	return nil
}

// #endregion application-state

// #region snapshot
// Snapshot pairs a session state with the version it was stored at.
// Version 0 means the session has never been committed.
type Snapshot struct {
	SessionID string
	Version   int64
	State     ApplicationState
	UpdatedAt time.Time
}

// #endregion snapshot
