package agent

import (
	"context"

	"ai-portgate-be/pkg/intent"
)

// BookingStatusAgent looks a booking up by its reference.
type BookingStatusAgent struct {
	bookings BookingService
}

func NewBookingStatusAgent(bookings BookingService) *BookingStatusAgent {
	return &BookingStatusAgent{bookings: bookings}
}

func (a *BookingStatusAgent) Run(ctx context.Context, req *Context) (*Response, error) {
	ref, ok := req.Entities["booking_ref"].(string)
	if !ok || ref == "" {
		return ValidationError("booking_ref",
			"Please give me a booking reference, for example REF123.", req.TraceID), nil
	}
	if req.AuthToken == "" {
		return Errorf("missing_auth", "Please sign in to track bookings.", req.TraceID), nil
	}

	booking, err := a.bookings.Status(ctx, ref, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}

	resp := OK("Here is the current status of "+ref+".", map[string]any{
		"intent":  intent.BookingStatus,
		"booking": booking,
	}, req.TraceID)
	resp.Proofs["source"] = "booking-service"
	return resp, nil
}
