package intent

import "strings"

// Classify runs the message through the pattern table and returns the best
// match. Within a group the confidence is the maximum of its matched rules
// while every matched rule name is kept as reasoning. Across groups the
// highest confidence wins; on equal confidence the group declared first in
// the table wins, which makes the whole function deterministic.
func Classify(message string) Result {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Result{
			Intent:       Unknown,
			Confidence:   1.0,
			Reasoning:    []string{"empty_message"},
			EntitiesHint: HintsFor(Unknown),
		}
	}

	best := Result{Intent: Unknown, Confidence: 0}
	for _, g := range patternGroups {
		var (
			matched []string
			top     float64
		)
		for _, r := range g.rules {
			if r.re.MatchString(trimmed) {
				matched = append(matched, r.name)
				if r.confidence > top {
					top = r.confidence
				}
			}
		}
		if len(matched) == 0 {
			continue
		}
		// strictly greater keeps declaration order as the tie-breaker
		if top > best.Confidence {
			best = Result{Intent: g.intent, Confidence: top, Reasoning: matched}
		}
	}

	if best.Confidence == 0 {
		return Result{
			Intent:       Unknown,
			Confidence:   0.5,
			Reasoning:    []string{"no_pattern_matched"},
			EntitiesHint: HintsFor(Unknown),
		}
	}
	best.EntitiesHint = HintsFor(best.Intent)
	return best
}
