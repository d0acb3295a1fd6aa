package voice

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// commandStems are the leading words of the English grammar, used for
// "did you mean" hints when a transcript matches nothing.
var commandStems = []string{
	"add income",
	"add expense",
	"received",
	"sale of",
	"spent",
	"paid",
	"show sales",
	"check stock",
	"stock level",
	"how many",
	"how much",
	"show analytics",
	"show dashboard",
}

const suggestMaxDistance = 4

// Suggest returns the closest known command stem for an unmatched English
// transcript, or "" when nothing is plausibly close. It compares against
// the transcript's first two words only, since the grammar discriminates on
// its leading words.
func Suggest(transcript string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(transcript)))
	if len(words) == 0 {
		return ""
	}
	head := words[0]
	if len(words) > 1 {
		head = words[0] + " " + words[1]
	}

	best := ""
	bestDist := suggestMaxDistance + 1
	for _, stem := range commandStems {
		target := stem
		if len(words) == 1 {
			target = strings.Fields(stem)[0]
		}
		d := levenshtein.ComputeDistance(head, target)
		if d < bestDist {
			bestDist = d
			best = stem
		}
	}
	if bestDist > suggestMaxDistance {
		return ""
	}
	return best
}
