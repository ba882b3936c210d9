// Package selector maps a free-text question onto one catalog entry.
//
// Selection is a checksum of the trimmed question taken modulo the size of
// the filtered candidate set. There is no randomness: the same question and
// filter against the same catalog always pick the same entry. Distinct
// questions whose code units sum to the same value collide on purpose.
package selector

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
)

// #region normalize
// Normalize strips leading and trailing whitespace, leaving internal
// content untouched. The trim set is Unicode White_Space plus U+FEFF, minus
// U+0085 (NEL), which hosts treat as content.
func Normalize(question string) string {
	return strings.TrimFunc(question, isTrimSpace)
}

func isTrimSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// #endregion normalize

// #region seed
// Seed sums the leading UTF-16 code unit of every code point in the
// normalized question. Code points outside the BMP contribute their high
// surrogate only.
func Seed(question string) uint64 {
	var sum uint64
	for _, r := range Normalize(question) {
		if r >= 0x10000 {
			hi, _ := utf16.EncodeRune(r)
			sum += uint64(hi)
			continue
		}
		sum += uint64(r)
	}
	return sum
}

// #endregion seed

// #region selector
// Selector picks entries from a fixed catalog.
type Selector struct {
	catalog *catalog.Catalog
}

// New creates a Selector over c. The catalog must have passed catalog.New.
func New(c *catalog.Catalog) *Selector {
	return &Selector{catalog: c}
}

// Catalog returns the catalog the selector reads from.
func (s *Selector) Catalog() *catalog.Catalog {
	return s.catalog
}

// Index returns the position within the filter's candidate set that
// question maps to, along with the candidate count.
func (s *Selector) Index(question string, filter catalog.Filter) (int, int) {
	n := len(s.candidates(filter))
	return int(Seed(question) % uint64(n)), n
}

// Select returns the entry for question under filter.
// filter must be valid; the input boundary rejects anything else.
func (s *Selector) Select(question string, filter catalog.Filter) catalog.ResponseEntry {
	i, _ := s.Index(question, filter)
	return s.catalog.Candidates(filter)[i]
}

func (s *Selector) candidates(filter catalog.Filter) []catalog.ResponseEntry {
	candidates := s.catalog.Candidates(filter)
	if len(candidates) == 0 {
		panic(fmt.Sprintf("selector: no candidates for filter %q", filter))
	}
	return candidates
}

// #endregion selector
