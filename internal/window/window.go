// Package window selects the policy-densest fixed-size span of a long
// document. Committee speeches front-load attendance, thanks and disclaimers;
// counting policy keywords across a sliding window biases the scored excerpt
// toward the substantive discussion without real NLP.
package window

import "strings"

// DefaultMax is the window size handed to the scoring call.
const DefaultMax = 3000

// stride is the sweep step. Small relative to the window so adjacent
// positions overlap heavily.
const stride = 250

// Select returns text unchanged when it fits in maxChars. Otherwise it scores
// every stride-aligned window by keyword occurrences over the lowercased text
// and returns the original-cased window with the highest count. Comparison is
// strict greater-than, so the earliest best window wins ties.
func Select(text string, maxChars int, keywords []string) string {
	if len(text) <= maxChars {
		return text
	}
	lower := strings.ToLower(text)
	limit := len(text) - maxChars
	if limit < 1 {
		limit = 1
	}
	bestIdx, bestScore := 0, -1
	for i := 0; i < limit; i += stride {
		chunk := lower[i : i+maxChars]
		score := 0
		for _, kw := range keywords {
			score += strings.Count(chunk, kw)
		}
		if score > bestScore {
			bestScore, bestIdx = score, i
		}
	}
	return strings.TrimSpace(text[bestIdx : bestIdx+maxChars])
}
