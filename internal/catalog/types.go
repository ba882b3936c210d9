package catalog

import "fmt"

// #region tone
// Tone is the coarse sentiment category attached to every response.
type Tone string

const (
	TonePositive  Tone = "positive"
	ToneTentative Tone = "tentative"
	ToneNegative  Tone = "negative"
)

// Tones lists every tone in display order.
var Tones = []Tone{TonePositive, ToneTentative, ToneNegative}

// Valid reports whether t is one of the known tones.
func (t Tone) Valid() bool {
	switch t {
	case TonePositive, ToneTentative, ToneNegative:
		return true
	}
	return false
}

// ParseTone converts s into a Tone.
func ParseTone(s string) (Tone, error) {
	t := Tone(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tone %q", s)
	}
	return t, nil
}

// #endregion tone

// #region filter
// Filter narrows the candidate set. FilterAll keeps the full catalog,
// the other values keep a single tone partition.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPositive  Filter = Filter(TonePositive)
	FilterTentative Filter = Filter(ToneTentative)
	FilterNegative  Filter = Filter(ToneNegative)
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterPositive, FilterTentative, FilterNegative}

// Valid reports whether f is one of the four known filters.
func (f Filter) Valid() bool {
	return f == FilterAll || Tone(f).Valid()
}

// ParseFilter converts s into a Filter. An empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown tone filter %q", s)
	}
	return f, nil
}

// #endregion filter

// #region response-entry
// ResponseEntry is one canned reading in the catalog.
type ResponseEntry struct {
	ID          string `json:"id" yaml:"id"`
	Tone        Tone   `json:"tone" yaml:"tone"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"` // presentation accent, passed through untouched
}

// #endregion response-entry

// #region config-error
// ConfigError reports a catalog that cannot serve every filter.
// It is fatal at startup and never returned per request.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "catalog configuration: " + e.Reason
}

// #endregion config-error
