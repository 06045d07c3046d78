package agent

import (
	"context"
	"fmt"
	"time"

	"ai-portgate-be/pkg/intent"
)

// BookingCreateAgent books a slot. Two strategies: "direct" when the user
// already named a slot id, "smart" when only terminal/date are known and a
// free slot has to be picked first.
type BookingCreateAgent struct {
	bookings BookingService
	slots    SlotService
	now      func() time.Time
}

func NewBookingCreateAgent(bookings BookingService, slots SlotService) *BookingCreateAgent {
	return &BookingCreateAgent{bookings: bookings, slots: slots, now: time.Now}
}

func (a *BookingCreateAgent) Run(ctx context.Context, req *Context) (*Response, error) {
	if req.AuthToken == "" {
		return Errorf("missing_auth", "Please sign in to book a slot.", req.TraceID), nil
	}

	date, ok := resolveDate(req.Entities, a.now())
	if !ok {
		return ValidationError("date",
			"Which day should I book? Say \"tomorrow\" or give a date like 2026-09-15.", req.TraceID), nil
	}
	terminal, _ := req.Entities["terminal"].(string)
	gate, _ := req.Entities["gate"].(string)
	carrier, _ := req.Entities["carrier_id"].(string)

	if slotID, has := req.Entities["slot_id"].(string); has && slotID != "" {
		return a.createDirect(ctx, req, BookingCreateRequest{
			SlotID:    slotID,
			Terminal:  terminal,
			Gate:      gate,
			Date:      date,
			CarrierID: carrier,
		})
	}
	if terminal == "" {
		return ValidationError("terminal",
			"Which terminal? For example \"book terminal A tomorrow\".", req.TraceID), nil
	}
	return a.createSmart(ctx, req, SlotQuery{Terminal: terminal, Gate: gate, Date: date}, carrier)
}

func (a *BookingCreateAgent) createDirect(ctx context.Context, req *Context, cr BookingCreateRequest) (*Response, error) {
	booking, err := a.bookings.Create(ctx, cr, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}
	resp := OK(fmt.Sprintf("Booked %s for %s.", cr.SlotID, cr.Date), map[string]any{
		"intent":   intent.BookingCreate,
		"strategy": "direct",
		"booking":  booking,
	}, req.TraceID)
	resp.Proofs["source"] = "booking-service"
	return resp, nil
}

// createSmart asks the slot service for free slots first and books the
// best candidate in the same pass.
func (a *BookingCreateAgent) createSmart(ctx context.Context, req *Context, q SlotQuery, carrier string) (*Response, error) {
	available, err := a.slots.Available(ctx, q, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}
	if len(available) == 0 {
		return OK(fmt.Sprintf("No free slots at terminal %s on %s.", q.Terminal, q.Date), map[string]any{
			"intent":   intent.BookingCreate,
			"strategy": "smart",
			"slots":    []map[string]any{},
		}, req.TraceID), nil
	}

	pick := pickSlot(available)
	slotID := slotIDOf(pick)
	if slotID == "" {
		return Errorf("upstream_error",
			"The slot service returned candidates I could not book.", req.TraceID), nil
	}

	booking, err := a.bookings.Create(ctx, BookingCreateRequest{
		SlotID:    slotID,
		Terminal:  q.Terminal,
		Gate:      q.Gate,
		Date:      q.Date,
		CarrierID: carrier,
	}, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}

	resp := OK(fmt.Sprintf("Booked %s at terminal %s for %s.", slotID, q.Terminal, q.Date), map[string]any{
		"intent":   intent.BookingCreate,
		"strategy": "smart",
		"booking":  booking,
		"picked":   pick,
	}, req.TraceID)
	resp.Proofs["source"] = "booking-service"
	return resp, nil
}

func slotIDOf(slot map[string]any) string {
	for _, key := range []string{"slot_id", "id"} {
		if v, ok := slot[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
