package catalog

// #region guide
// ToneGuide is the display copy that accompanies a filter choice.
type ToneGuide struct {
	Filter  Filter `json:"filter"`
	Label   string `json:"label"`
	Heading string `json:"heading,omitempty"`
	Helper  string `json:"helper"`
}

var guides = map[Filter]ToneGuide{
	FilterAll: {
		Filter: FilterAll,
		Label:  "All vibrations",
		Helper: "Let the orb choose the energy that suits the moment.",
	},
	FilterPositive: {
		Filter:  FilterPositive,
		Label:   "Positive glow",
		Heading: "Upbeat energy",
		Helper:  "When you're ready to chase bold yeses and bright possibilities.",
	},
	FilterTentative: {
		Filter:  FilterTentative,
		Label:   "Thoughtful hum",
		Heading: "Reflective guidance",
		Helper:  "For when you’re looking for nuance, balance, or a gentle nudge.",
	},
	FilterNegative: {
		Filter:  FilterNegative,
		Label:   "Real talk",
		Heading: "Grounded realism",
		Helper:  "Perfect for reality checks and cosmic course corrections.",
	},
}

// Guide returns the display copy for f.
func Guide(f Filter) (ToneGuide, bool) {
	g, ok := guides[f]
	return g, ok
}

// Guides returns the copy for every filter in display order.
func Guides() []ToneGuide {
	out := make([]ToneGuide, 0, len(Filters))
	for _, f := range Filters {
		out = append(out, guides[f])
	}
	return out
}

// #endregion guide
