// Package oracle runs the per-session ask flow: the gate check, selection,
// record creation, then applying the transition and committing it.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
	"github.com/danielpatrickdp/magic-orb/internal/gate"
	"github.com/danielpatrickdp/magic-orb/internal/reading"
	"github.com/danielpatrickdp/magic-orb/internal/selector"
	"github.com/danielpatrickdp/magic-orb/internal/state"
)

// #region constants

const maxRetries = 2 // stale commits retried twice = 3 total attempts

// ErrNoSession is returned when a request carries no session id.
var ErrNoSession = errors.New("session id is required")

// #endregion

// #region session-store

// SessionStore is the host persistence boundary. state.Store implements it.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (state.Snapshot, error)
	Commit(ctx context.Context, sessionID string, expectedVersion int64, next state.ApplicationState) (int64, error)
	Sessions(ctx context.Context) ([]string, error)
}

// #endregion

// #region oracle-struct

// Oracle answers questions for any number of independent sessions.
type Oracle struct {
	gate     *gate.Gate
	selector *selector.Selector
	factory  *reading.Factory
	store    SessionStore
	locks    *sessionLocks
	logger   *zap.Logger
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithGate replaces the default 3 to 120 rune gate.
func WithGate(g *gate.Gate) Option { return func(o *Oracle) { o.gate = g } }

// WithSelector replaces the selector over the built-in catalog.
func WithSelector(s *selector.Selector) Option { return func(o *Oracle) { o.selector = s } }

// WithFactory replaces the reading factory.
func WithFactory(f *reading.Factory) Option { return func(o *Oracle) { o.factory = f } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(o *Oracle) { o.logger = l } }

// #endregion

// #region constructor

// New creates an Oracle committing through store.
func New(store SessionStore, opts ...Option) *Oracle {
	o := &Oracle{
		gate:    gate.NewGate(gate.DefaultGateConfig()),
		factory: reading.NewFactory(),
		store:   store,
		locks:   newSessionLocks(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.selector == nil {
		o.selector = selector.New(catalog.MustDefault())
	}
	return o
}

// Catalog returns the catalog readings are drawn from.
func (o *Oracle) Catalog() *catalog.Catalog {
	return o.selector.Catalog()
}

// #endregion

// #region ask

// Result is the outcome of one accepted ask.
type Result struct {
	Reading state.ReadingRecord
	State   state.ApplicationState
	Version int64
}

// Ask validates in, picks a reading and applies it to the session.
// Requests on one session are applied strictly in arrival order; a request
// whose context ends before its commit leaves the session untouched.
func (o *Oracle) Ask(ctx context.Context, sessionID string, in gate.AskInput) (Result, error) {
	if sessionID == "" {
		return Result{}, ErrNoSession
	}

	ask, err := o.gate.Check(in)
	if err != nil {
		o.logger.Debug("ask rejected", zap.String("session", sessionID), zap.Error(err))
		return Result{}, err
	}

	entry := o.selector.Select(ask.Question, ask.Filter)

	release, err := o.locks.acquire(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	defer release()

	// Stamped under the lock so history timestamps follow commit order.
	rec := o.factory.Create(ask.Question, entry)

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		snap, err := o.store.Load(ctx, sessionID)
		if err != nil {
			return Result{}, fmt.Errorf("load session %s: %w", sessionID, err)
		}

		next := state.ApplyReading(snap.State, rec)
		version, err := o.store.Commit(ctx, sessionID, snap.Version, next)
		if errors.Is(err, state.ErrStaleState) && attempt < maxRetries {
			o.logger.Warn("stale session, retrying",
				zap.String("session", sessionID),
				zap.Int64("version", snap.Version),
				zap.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("commit session %s: %w", sessionID, err)
		}

		o.logger.Info("reading applied",
			zap.String("session", sessionID),
			zap.String("reading_id", rec.ID),
			zap.String("response_id", entry.ID),
			zap.String("tone", string(entry.Tone)),
			zap.String("filter", string(ask.Filter)),
			zap.Int("history", len(next.History)),
			zap.Int64("version", version))

		return Result{Reading: rec, State: next, Version: version}, nil
	}
}

// #endregion

// #region state

// State returns the current snapshot of a session.
func (o *Oracle) State(ctx context.Context, sessionID string) (state.Snapshot, error) {
	if sessionID == "" {
		return state.Snapshot{}, ErrNoSession
	}
	snap, err := o.store.Load(ctx, sessionID)
	if err != nil {
		return state.Snapshot{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return snap, nil
}

// #endregion

// #region sessions

// Sessions lists every session with at least one committed reading.
func (o *Oracle) Sessions(ctx context.Context) ([]string, error) {
	ids, err := o.store.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return ids, nil
}

// #endregion
