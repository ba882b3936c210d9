package catalog

// #region default-responses
// defaultResponses is the built-in catalog: 5 positive, 4 tentative, 5 negative.
// Order is significant; selection indexes into it.
var defaultResponses = []ResponseEntry{
	{
		ID:          "crystal-clear",
		Tone:        TonePositive,
		Title:       "Crystal Clear",
		Description: "Signs point to an absolutely radiant yes.",
		Color:       "#3DD68C",
	},
	{
		ID:          "cosmic-wink",
		Tone:        TonePositive,
		Title:       "Cosmic Wink",
		Description: "The universe is already smiling in your direction.",
		Color:       "#5BE49B",
	},
	{
		ID:          "destiny-aligned",
		Tone:        TonePositive,
		Title:       "Destiny Aligned",
		Description: "All threads of fate are weaving toward the answer you seek.",
		Color:       "#74F0AC",
	},
	{
		ID:          "starlit-sign",
		Tone:        TonePositive,
		Title:       "Starlit Sign",
		Description: "Every constellation lights up with a confident yes.",
		Color:       "#8FF9BE",
	},
	{
		ID:          "vibrant-yes",
		Tone:        TonePositive,
		Title:       "Vibrant Yes",
		Description: "Magnetic energy says go for it without hesitation.",
		Color:       "#A4FFD0",
	},
	{
		ID:          "listen-closely",
		Tone:        ToneTentative,
		Title:       "Listen Closely",
		Description: "The vision is hazy—rephrase the question or dig deeper.",
		Color:       "#F5D565",
	},
	{
		ID:          "pause-and-see",
		Tone:        ToneTentative,
		Title:       "Pause & See",
		Description: "Let the cosmic dust settle before you decide.",
		Color:       "#F3C861",
	},
	{
		ID:          "ask-again",
		Tone:        ToneTentative,
		Title:       "Ask Again",
		Description: "The orb is rebooting its clairvoyance—try a fresh angle soon.",
		Color:       "#F9DC8C",
	},
	{
		ID:          "foggy-horizon",
		Tone:        ToneTentative,
		Title:       "Foggy Horizon",
		Description: "You’re on the verge—seek one more clue to clarify.",
		Color:       "#F6D477",
	},
	{
		ID:          "resounding-no",
		Tone:        ToneNegative,
		Title:       "Resounding No",
		Description: "Every ripple settles on a definitive no.",
		Color:       "#F97066",
	},
	{
		ID:          "shift-course",
		Tone:        ToneNegative,
		Title:       "Shift Course",
		Description: "Redirect your energy—the path ahead is blocked.",
		Color:       "#F25B54",
	},
	{
		ID:          "cosmic-detour",
		Tone:        ToneNegative,
		Title:       "Cosmic Detour",
		Description: "The stars advise a different approach for now.",
		Color:       "#EF4E4E",
	},
	{
		ID:          "not-now",
		Tone:        ToneNegative,
		Title:       "Not Now",
		Description: "Timing is off—wait for the cosmic currents to change.",
		Color:       "#E5484D",
	},
	{
		ID:          "let-go",
		Tone:        ToneNegative,
		Title:       "Let It Go",
		Description: "Release the question; the answer is a grounded no.",
		Color:       "#D93036",
	},
}

// #endregion default-responses
