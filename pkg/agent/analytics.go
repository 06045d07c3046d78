package agent

import (
	"context"

	"ai-portgate-be/pkg/intent"
)

// OperatorAnalyticsAgent summarizes operator performance over a recent
// window. Restricted to ADMIN/OPERATOR by the access policy upstream.
type OperatorAnalyticsAgent struct {
	analytics AnalyticsService
}

func NewOperatorAnalyticsAgent(analytics AnalyticsService) *OperatorAnalyticsAgent {
	return &OperatorAnalyticsAgent{analytics: analytics}
}

const defaultAnalyticsWindowDays = 30

func (a *OperatorAnalyticsAgent) Run(ctx context.Context, req *Context) (*Response, error) {
	if req.AuthToken == "" {
		return Errorf("missing_auth", "Please sign in to view analytics.", req.TraceID), nil
	}
	terminal, _ := req.Entities["terminal"].(string)
	operator, _ := req.Entities["carrier_id"].(string)

	overview, err := a.analytics.Overview(ctx, AnalyticsQuery{
		OperatorID: operator,
		Terminal:   terminal,
		RangeDays:  defaultAnalyticsWindowDays,
	}, req.AuthToken)
	if err != nil {
		return Errorf("upstream_error", upstreamMessage(err), req.TraceID), nil
	}

	resp := OK("Here is the operator performance overview.", map[string]any{
		"intent":   intent.OperatorAnalytics,
		"overview": overview,
		"window":   defaultAnalyticsWindowDays,
	}, req.TraceID)
	resp.Proofs["source"] = "analytics-service"
	return resp, nil
}
