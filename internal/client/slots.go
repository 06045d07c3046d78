package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"ai-portgate-be/pkg/agent"
)

// SlotClient talks to the slot planning microservice.
type SlotClient struct {
	baseClient
}

var _ agent.SlotService = &SlotClient{}

func NewSlotClient(baseURL string) *SlotClient {
	return &SlotClient{baseClient: newBaseClient("slot-service", baseURL)}
}

func (c *SlotClient) Available(ctx context.Context, q agent.SlotQuery, authToken string) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("terminal", q.Terminal)
	query.Set("date", q.Date)
	if q.Gate != "" {
		query.Set("gate", q.Gate)
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/slots/available", query, nil, authToken, &raw); err != nil {
		return nil, err
	}

	// the service answered {"slots": [...]} historically and a bare list
	// since v2; accept both
	var wrapped struct {
		Slots []map[string]any `json:"slots"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Slots != nil {
		return wrapped.Slots, nil
	}
	var bare []map[string]any
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}
	return nil, fmt.Errorf("slot-service returned an unrecognized payload")
}
