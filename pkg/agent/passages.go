package agent

import (
	"context"
	"fmt"
	"time"

	"ai-portgate-be/pkg/intent"
)

// PassageHistoryAgent lists gate passages for a day. Without an explicit
// day the question is about the past, so it defaults to yesterday.
type PassageHistoryAgent struct {
	passages PassageService
	now      func() time.Time
}

func NewPassageHistoryAgent(passages PassageService) *PassageHistoryAgent {
	return &PassageHistoryAgent{passages: passages, now: time.Now}
}

func (a *PassageHistoryAgent) Run(ctx context.Context, req *Context) (*Response, error) {
	if req.AuthToken == "" {
		return Errorf("missing_auth", "Please sign in to view passage history.", req.TraceID), nil
	}
	date, ok := resolveDate(req.Entities, a.now())
	if !ok {
		date = a.now().AddDate(0, 0, -1).Format("2006-01-02")
	}
	terminal, _ := req.Entities["terminal"].(string)
	gate, _ := req.Entities["gate"].(string)

	passages, err := a.passages.History(ctx, PassageQuery{Terminal: terminal, Gate: gate, Date: date}, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}

	msg := fmt.Sprintf("Found %d passage(s) on %s.", len(passages), date)
	if len(passages) == 0 {
		msg = fmt.Sprintf("No passages recorded on %s.", date)
	}
	resp := OK(msg, map[string]any{
		"intent":   intent.PassageHistory,
		"date":     date,
		"passages": passages,
	}, req.TraceID)
	resp.Proofs["source"] = "passage-service"
	return resp, nil
}
