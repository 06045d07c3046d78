package intent

import (
	"regexp"
	"strings"
)

// Turn is one prior exchange of a conversation as seen by the follow-up
// resolver. Intent is the classified intent of that turn, empty when the
// turn was never classified.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Intent  string `json:"intent,omitempty"`
}

var followupMarkerRe = regexp.MustCompile(
	`(?i)\b(and|what about|then|also|too|same|next|previous|again|` +
		`et|puis|aussi|même|encore|pareil|` +
		`today|tomorrow|yesterday|aujourd['’]hui|demain|hier)\b`)

// non-carryable intents: resuming them as context would be meaningless
var noCarry = map[string]struct{}{
	Unknown:   {},
	Help:      {},
	Smalltalk: {},
	"":        {},
}

// ResolveFollowup rewrites an unknown classification into the most recent
// actionable intent from history when the message looks like a continuation
// (short, or carrying a follow-up marker such as "and"/"aussi"/"demain").
// History is ordered oldest first; the scan runs newest first. When nothing
// applies the original result comes back untouched.
func ResolveFollowup(res Result, message string, history []Turn) Result {
	if res.Intent != Unknown {
		return res
	}
	if !looksLikeFollowup(message) {
		return res
	}
	for i := len(history) - 1; i >= 0; i-- {
		prev := history[i].Intent
		if _, skip := noCarry[prev]; skip {
			continue
		}
		return Result{
			Intent:       prev,
			Confidence:   0.6,
			Reasoning:    append(res.Reasoning, "followup_from_history"),
			EntitiesHint: HintsFor(prev),
		}
	}
	return res
}

func looksLikeFollowup(message string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false
	}
	if len(strings.Fields(trimmed)) <= 4 {
		return true
	}
	return followupMarkerRe.MatchString(trimmed)
}
