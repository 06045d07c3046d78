package agent

import (
	"context"
	"fmt"
	"strings"

	"ai-portgate-be/pkg/access"
	"ai-portgate-be/pkg/intent"
)

// capability blurbs shown by the help agent, keyed by intent
var capabilityText = map[string]string{
	intent.BookingStatus:     "check the status of a booking (e.g. \"status of REF123\")",
	intent.BookingCreate:     "book a slot (e.g. \"book terminal A tomorrow\")",
	intent.SlotAvailability:  "list available slots (e.g. \"available slots at terminal A\")",
	intent.SlotRecommend:     "recommend the best slot for your constraints",
	intent.PassageHistory:    "show gate passage history (e.g. \"trucks from yesterday\")",
	intent.BlockchainAudit:   "verify a booking on the blockchain audit trail",
	intent.OperatorAnalytics: "summarize operator performance analytics",
}

// HelpAgent answers help/greeting requests with a capability listing
// tailored to what the caller's role may actually do.
type HelpAgent struct{}

func (HelpAgent) Run(_ context.Context, req *Context) (*Response, error) {
	var lines []string
	for _, name := range access.AllowedIntents(req.Role) {
		if blurb, ok := capabilityText[name]; ok {
			lines = append(lines, "- "+blurb)
		}
	}
	msg := "Hello! I am the port logistics assistant."
	if len(lines) > 0 {
		msg += " Here is what I can do for you:\n" + strings.Join(lines, "\n")
	} else {
		msg += " Sign in to book slots, track bookings and more."
	}
	return OK(msg, map[string]any{
		"intent":       intent.Help,
		"capabilities": len(lines),
	}, req.TraceID), nil
}

// SmalltalkAgent keeps the conversation polite without burning a backend
// call.
type SmalltalkAgent struct{}

func (SmalltalkAgent) Run(_ context.Context, req *Context) (*Response, error) {
	msg := "You're welcome! Ask me about slots, bookings or passages whenever you're ready."
	return OK(msg, map[string]any{"intent": intent.Smalltalk}, req.TraceID), nil
}

// UnknownAgent is the terminal handler when no intent could be derived. It
// nudges the user toward phrasings the classifier understands.
type UnknownAgent struct{}

func (UnknownAgent) Run(_ context.Context, req *Context) (*Response, error) {
	msg := fmt.Sprintf(
		"Sorry, I did not understand %q. Try \"available slots at terminal A tomorrow\" or \"status of REF123\", or say \"help\".",
		truncate(req.Message, 80),
	)
	return OK(msg, map[string]any{
		"intent":    intent.Unknown,
		"reasoning": req.Reasoning,
	}, req.TraceID), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
