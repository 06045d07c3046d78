package client

import (
	"context"
	"net/http"
	"strings"

	"ai-portgate-be/pkg/agent"
	"ai-portgate-be/pkg/intent"
)

// HistoryClient fetches and appends conversation turns from the backend
// that owns persistence. The wire format has drifted over time, so Fetch
// normalizes aggressively: unknown roles are dropped, the content may
// arrive under "content", "text" or "message", and missing fields never
// fail the whole conversation.
type HistoryClient struct {
	baseClient
}

func NewHistoryClient(baseURL string) *HistoryClient {
	return &HistoryClient{baseClient: newBaseClient("history-service", baseURL)}
}

type rawTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Text    string `json:"text"`
	Message string `json:"message"`
	Intent  string `json:"intent"`
}

type historyResponse struct {
	Turns []rawTurn `json:"turns"`
}

func (c *HistoryClient) Fetch(ctx context.Context, conversationID, authToken string) ([]intent.Turn, error) {
	var out historyResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/conversations/"+conversationID+"/turns", nil, nil, authToken, &out)
	if err != nil {
		// a missing conversation is an empty history, not a failure
		if ue, ok := err.(*agent.UpstreamError); ok && ue.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return normalizeTurns(out.Turns), nil
}

type appendTurnRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Intent  string `json:"intent,omitempty"`
}

func (c *HistoryClient) Append(ctx context.Context, conversationID string, turn intent.Turn, authToken string) error {
	body := appendTurnRequest{Role: turn.Role, Content: turn.Content, Intent: turn.Intent}
	return c.doJSON(ctx, http.MethodPost, "/api/conversations/"+conversationID+"/turns", nil, body, authToken, nil)
}

func (c *HistoryClient) Clear(ctx context.Context, conversationID, authToken string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/conversations/"+conversationID+"/turns", nil, nil, authToken, nil)
}

func normalizeTurns(raw []rawTurn) []intent.Turn {
	out := make([]intent.Turn, 0, len(raw))
	for _, t := range raw {
		role := strings.ToLower(strings.TrimSpace(t.Role))
		if role != "user" && role != "assistant" {
			continue
		}
		content := t.Content
		if content == "" {
			content = t.Text
		}
		if content == "" {
			content = t.Message
		}
		if content == "" {
			continue
		}
		out = append(out, intent.Turn{Role: role, Content: content, Intent: t.Intent})
	}
	return out
}
