package agent

import (
	"context"
	"fmt"
	"time"

	"ai-portgate-be/pkg/intent"
)

// SlotAvailabilityAgent lists free slots for a terminal and day.
type SlotAvailabilityAgent struct {
	slots SlotService
	now   func() time.Time
}

func NewSlotAvailabilityAgent(slots SlotService) *SlotAvailabilityAgent {
	return &SlotAvailabilityAgent{slots: slots, now: time.Now}
}

func (a *SlotAvailabilityAgent) Run(ctx context.Context, req *Context) (*Response, error) {
	terminal, _ := req.Entities["terminal"].(string)
	if terminal == "" {
		return ValidationError("terminal",
			"Which terminal should I check? For example \"available slots at terminal A\".", req.TraceID), nil
	}
	date, ok := resolveDate(req.Entities, a.now())
	if !ok {
		// availability questions without a day mean today
		date = a.now().Format("2006-01-02")
	}
	gate, _ := req.Entities["gate"].(string)

	available, err := a.slots.Available(ctx, SlotQuery{Terminal: terminal, Gate: gate, Date: date}, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}

	msg := fmt.Sprintf("Found %d free slot(s) at terminal %s on %s.", len(available), terminal, date)
	if len(available) == 0 {
		msg = fmt.Sprintf("No free slots at terminal %s on %s.", terminal, date)
	}
	resp := OK(msg, map[string]any{
		"intent":   intent.SlotAvailability,
		"terminal": terminal,
		"date":     date,
		"slots":    available,
	}, req.TraceID)
	resp.Proofs["source"] = "slot-service"
	return resp, nil
}

// SlotRecommendAgent picks the best candidate among the free slots. The
// ranking is deterministic: lowest reported occupancy first, earliest start
// time as the tie-breaker.
type SlotRecommendAgent struct {
	slots SlotService
	now   func() time.Time
}

func NewSlotRecommendAgent(slots SlotService) *SlotRecommendAgent {
	return &SlotRecommendAgent{slots: slots, now: time.Now}
}

func (a *SlotRecommendAgent) Run(ctx context.Context, req *Context) (*Response, error) {
	terminal, _ := req.Entities["terminal"].(string)
	if terminal == "" {
		return ValidationError("terminal",
			"Which terminal should I look at? For example \"recommend a slot at terminal A\".", req.TraceID), nil
	}
	date, ok := resolveDate(req.Entities, a.now())
	if !ok {
		date = a.now().Format("2006-01-02")
	}
	gate, _ := req.Entities["gate"].(string)

	available, err := a.slots.Available(ctx, SlotQuery{Terminal: terminal, Gate: gate, Date: date}, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}
	if len(available) == 0 {
		return OK(fmt.Sprintf("No free slots to recommend at terminal %s on %s.", terminal, date), map[string]any{
			"intent": intent.SlotRecommend,
			"slots":  []map[string]any{},
		}, req.TraceID), nil
	}

	best := pickSlot(available)
	alternatives := make([]map[string]any, 0, 3)
	for _, s := range available {
		if len(alternatives) == 3 {
			break
		}
		if slotIDOf(s) != slotIDOf(best) {
			alternatives = append(alternatives, s)
		}
	}

	resp := OK(fmt.Sprintf("Best slot at terminal %s on %s: %s.", terminal, date, slotIDOf(best)), map[string]any{
		"intent":       intent.SlotRecommend,
		"recommended":  best,
		"alternatives": alternatives,
	}, req.TraceID)
	resp.Proofs["source"] = "slot-service"
	return resp, nil
}

// pickSlot returns the least occupied slot, earliest start time breaking
// ties, falling back to the first candidate when the fields are absent.
func pickSlot(slots []map[string]any) map[string]any {
	best := slots[0]
	for _, s := range slots[1:] {
		bo, so := occupancyOf(best), occupancyOf(s)
		switch {
		case so < bo:
			best = s
		case so == bo && startOf(s) < startOf(best):
			best = s
		}
	}
	return best
}

func occupancyOf(slot map[string]any) float64 {
	if v, ok := slot["occupancy"].(float64); ok {
		return v
	}
	return 1.0
}

func startOf(slot map[string]any) string {
	if v, ok := slot["start_time"].(string); ok {
		return v
	}
	return "~" // sorts after any timestamp
}
