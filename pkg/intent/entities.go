package intent

import (
	"regexp"
	"strings"
)

// Entities maps an entity name to its extracted value. String entities are
// normalized (uppercase ids, digit-only numeric ids); relative dates are
// boolean flags so the caller decides which clock resolves them.
type Entities map[string]any

var (
	terminalRe   = regexp.MustCompile(`(?i)\bterminal\s+([a-z0-9]+)\b`)
	gateRe       = regexp.MustCompile(`(?i)\bgate\s+([a-z0-9]+)\b`)
	gateShortRe  = regexp.MustCompile(`(?i)\b(g\d+)\b`)
	slotRe       = regexp.MustCompile(`(?i)\bslot[a-z0-9-]*`)
	carrierRe    = regexp.MustCompile(`(?i)\b(?:carrier|transporteur)\s*#?\s*(\d+)\b`)
	bookingRefRe = regexp.MustCompile(`(?i)\b(?:ref|réf)[-\s]?(\d{3,})\b`)
	isoDateRe    = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	todayRe      = regexp.MustCompile(`(?i)\b(today|aujourd['’]hui)\b`)
	tomorrowRe   = regexp.MustCompile(`(?i)\b(tomorrow|demain)\b`)
	yesterdayRe  = regexp.MustCompile(`(?i)\b(yesterday|hier)\b`)
	digitRe      = regexp.MustCompile(`\d`)
)

// ExtractEntities pulls the structured values out of a raw message. Only the
// entities actually present appear in the map; callers probe with the comma
// ok idiom.
func ExtractEntities(message string) Entities {
	out := Entities{}

	if m := terminalRe.FindStringSubmatch(message); m != nil {
		out["terminal"] = strings.ToUpper(m[1])
	}
	if m := gateRe.FindStringSubmatch(message); m != nil {
		out["gate"] = strings.ToUpper(m[1])
	} else if m := gateShortRe.FindStringSubmatch(message); m != nil {
		out["gate"] = strings.ToUpper(m[1])
	}
	if slot := findSlotID(message); slot != "" {
		out["slot_id"] = slot
	}
	if m := carrierRe.FindStringSubmatch(message); m != nil {
		out["carrier_id"] = m[1]
	}
	if m := bookingRefRe.FindStringSubmatch(message); m != nil {
		out["booking_ref"] = "REF" + m[1]
	}
	if m := isoDateRe.FindStringSubmatch(message); m != nil {
		out["date"] = m[1]
	}
	if todayRe.MatchString(message) {
		out["date_today"] = true
	}
	if tomorrowRe.MatchString(message) {
		out["date_tomorrow"] = true
	}
	if yesterdayRe.MatchString(message) {
		out["date_yesterday"] = true
	}
	return out
}

// findSlotID returns the first slot token that carries at least one digit,
// uppercased with its hyphens intact. A bare "slot"/"slots" word is not an
// id and is skipped.
func findSlotID(message string) string {
	for _, tok := range slotRe.FindAllString(message, -1) {
		tok = strings.Trim(tok, "-")
		if digitRe.MatchString(tok) {
			return strings.ToUpper(tok)
		}
	}
	return ""
}

// Merge overlays extra onto e without overwriting values e already holds.
// Used to fold the softer LLM-extracted entities under the deterministic
// ones.
func (e Entities) Merge(extra Entities) Entities {
	for k, v := range extra {
		if _, ok := e[k]; !ok {
			e[k] = v
		}
	}
	return e
}
