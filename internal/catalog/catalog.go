package catalog

import "fmt"

// #region catalog-struct
// Catalog is the immutable, ordered response list plus its tone partitions.
// It is safe for concurrent use by any number of sessions.
type Catalog struct {
	entries []ResponseEntry
	byTone  map[Tone][]ResponseEntry
	byID    map[string]int
}

// #endregion catalog-struct

// #region constructor
// New copies entries into a Catalog, rejecting any layout that would leave
// a filter without candidates.
func New(entries []ResponseEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, &ConfigError{Reason: "no response entries"}
	}

	c := &Catalog{
		entries: make([]ResponseEntry, len(entries)),
		byTone:  make(map[Tone][]ResponseEntry, len(Tones)),
		byID:    make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)

	for i, e := range c.entries {
		if e.ID == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("entry %d has an empty id", i)}
		}
		if !e.Tone.Valid() {
			return nil, &ConfigError{Reason: fmt.Sprintf("entry %q has unknown tone %q", e.ID, e.Tone)}
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, &ConfigError{Reason: fmt.Sprintf("duplicate entry id %q", e.ID)}
		}
		c.byID[e.ID] = i
		c.byTone[e.Tone] = append(c.byTone[e.Tone], e)
	}

	for _, t := range Tones {
		if len(c.byTone[t]) == 0 {
			return nil, &ConfigError{Reason: fmt.Sprintf("tone %q has no entries", t)}
		}
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return New(defaultResponses)
}

// MustDefault is Default for process start; a broken built-in catalog panics.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// #endregion constructor

// #region accessors
// Len returns the total number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of every entry in catalog order.
func (c *Catalog) Entries() []ResponseEntry {
	out := make([]ResponseEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Candidates returns the entries a filter selects from, in catalog order.
// The slice is shared and must not be modified. Unknown filters yield nil.
func (c *Catalog) Candidates(f Filter) []ResponseEntry {
	if f == FilterAll {
		return c.entries
	}
	return c.byTone[Tone(f)]
}

// Lookup finds an entry by id.
func (c *Catalog) Lookup(id string) (ResponseEntry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ResponseEntry{}, false
	}
	return c.entries[i], true
}

// #endregion accessors
