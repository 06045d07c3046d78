package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ai-portgate-be/pkg/agent"
)

// AnalyticsClient talks to the operator analytics microservice.
type AnalyticsClient struct {
	baseClient
}

var _ agent.AnalyticsService = &AnalyticsClient{}

func NewAnalyticsClient(baseURL string) *AnalyticsClient {
	return &AnalyticsClient{baseClient: newBaseClient("analytics-service", baseURL)}
}

func (c *AnalyticsClient) Overview(ctx context.Context, q agent.AnalyticsQuery, authToken string) (map[string]any, error) {
	query := url.Values{}
	if q.OperatorID != "" {
		query.Set("operator_id", q.OperatorID)
	}
	if q.Terminal != "" {
		query.Set("terminal", q.Terminal)
	}
	if q.RangeDays > 0 {
		query.Set("range_days", strconv.Itoa(q.RangeDays))
	}

	var out map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/api/analytics/operators/overview", query, nil, authToken, &out); err != nil {
		return nil, err
	}
	return out, nil
}
