package reading

import (
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
	"github.com/danielpatrickdp/magic-orb/internal/selector"
	"github.com/danielpatrickdp/magic-orb/internal/state"
)

// #region factory
// Factory stamps selected responses into reading records.
type Factory struct {
	clock func() time.Time
	newID func() string
}

// Option configures a Factory.
type Option func(*Factory)

// WithClock replaces the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(f *Factory) { f.clock = clock }
}

// WithIDSource replaces the id generator.
func WithIDSource(newID func() string) Option {
	return func(f *Factory) { f.newID = newID }
}

// NewFactory returns a Factory using the UTC wall clock and UUIDv7 ids,
// which carry a millisecond timestamp followed by random bits.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		clock: func() time.Time { return time.Now().UTC() },
		newID: newUUIDv7,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// #endregion factory

// #region create
// Create builds the record for one accepted request. The question is trimmed;
// length and content checks belong to the caller.
func (f *Factory) Create(question string, response catalog.ResponseEntry) state.ReadingRecord {
	return state.ReadingRecord{
		ID:        f.newID(),
		Question:  selector.Normalize(question),
		Response:  response,
		Timestamp: f.clock().UTC(),
	}
}

// #endregion create

// #region helpers
func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// #endregion helpers
