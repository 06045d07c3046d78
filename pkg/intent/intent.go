// Package intent implements the deterministic side of message understanding:
// a priority-ordered pattern classifier, an entity extractor and a follow-up
// resolver. Everything in this package is a pure function of its input so it
// is safe for unlimited concurrent callers.
package intent

// Request intents. The order of declaration here is informational; the
// authoritative matching priority lives in the pattern table (patterns.go).
const (
	Help              = "help"
	BookingStatus     = "booking_status"
	BookingCreate     = "booking_create"
	SlotAvailability  = "slot_availability"
	SlotRecommend     = "slot_recommendation"
	PassageHistory    = "passage_history"
	BlockchainAudit   = "blockchain_audit"
	OperatorAnalytics = "operator_analytics_overview"
	Smalltalk         = "smalltalk"
	Unknown           = "unknown"
)

// Response-only intents. These never come out of a classifier; the
// orchestrator uses them to tag terminal envelopes.
const (
	Forbidden      = "forbidden"
	NotImplemented = "not_implemented"
	Error          = "error"
)

// Result is the outcome of a single classification. Immutable once produced.
type Result struct {
	Intent       string     `json:"intent"`
	Confidence   float64    `json:"confidence"`
	Reasoning    []string   `json:"reasoning"`
	EntitiesHint EntityHint `json:"entities_hint"`
}

// EntityHint lists the entities an agent will look for once the intent is
// dispatched. Purely advisory.
type EntityHint struct {
	Expected []string `json:"expected"`
	Optional []string `json:"optional"`
}

// vocabulary is the closed intent set a classifier may produce.
var vocabulary = map[string]struct{}{
	Help:              {},
	BookingStatus:     {},
	BookingCreate:     {},
	SlotAvailability:  {},
	SlotRecommend:     {},
	PassageHistory:    {},
	BlockchainAudit:   {},
	OperatorAnalytics: {},
	Smalltalk:         {},
	Unknown:           {},
}

// Known reports whether name is part of the closed intent vocabulary.
func Known(name string) bool {
	_, ok := vocabulary[name]
	return ok
}

// Vocabulary returns the closed intent set in pattern-priority order.
func Vocabulary() []string {
	out := make([]string, 0, len(patternGroups)+1)
	for _, g := range patternGroups {
		out = append(out, g.intent)
	}
	return append(out, Unknown)
}

var entityHints = map[string]EntityHint{
	BookingStatus:     {Expected: []string{"booking_ref"}, Optional: []string{"date"}},
	BookingCreate:     {Expected: []string{"terminal", "date"}, Optional: []string{"gate", "slot_id", "carrier_id"}},
	SlotAvailability:  {Expected: []string{"terminal", "date"}, Optional: []string{"gate"}},
	SlotRecommend:     {Expected: []string{"terminal", "date"}, Optional: []string{"gate", "carrier_id"}},
	PassageHistory:    {Expected: []string{"date"}, Optional: []string{"terminal", "gate"}},
	BlockchainAudit:   {Expected: []string{"booking_ref"}, Optional: []string{}},
	OperatorAnalytics: {Expected: []string{"operator_id"}, Optional: []string{"terminal", "range_days"}},
}

// HintsFor returns the expected/optional entities for an intent. Intents
// without registered hints get empty slices, never nil-panics.
func HintsFor(name string) EntityHint {
	if h, ok := entityHints[name]; ok {
		return h
	}
	return EntityHint{Expected: []string{}, Optional: []string{}}
}
