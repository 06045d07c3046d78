package client

import (
	"context"
	"net/http"
	"net/url"

	"ai-portgate-be/pkg/agent"
)

// PassageClient talks to the gate passage microservice.
type PassageClient struct {
	baseClient
}

var _ agent.PassageService = &PassageClient{}

func NewPassageClient(baseURL string) *PassageClient {
	return &PassageClient{baseClient: newBaseClient("passage-service", baseURL)}
}

func (c *PassageClient) History(ctx context.Context, q agent.PassageQuery, authToken string) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("date", q.Date)
	if q.Terminal != "" {
		query.Set("terminal", q.Terminal)
	}
	if q.Gate != "" {
		query.Set("gate", q.Gate)
	}

	var out struct {
		Passages []map[string]any `json:"passages"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/passages", query, nil, authToken, &out); err != nil {
		return nil, err
	}
	if out.Passages == nil {
		return []map[string]any{}, nil
	}
	return out.Passages, nil
}
