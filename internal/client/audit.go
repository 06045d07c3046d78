package client

import (
	"context"
	"net/http"

	"ai-portgate-be/pkg/agent"
)

// AuditClient talks to the blockchain gateway that anchors booking hashes.
type AuditClient struct {
	baseClient
}

var _ agent.AuditService = &AuditClient{}

func NewAuditClient(baseURL string) *AuditClient {
	return &AuditClient{baseClient: newBaseClient("blockchain-gateway", baseURL)}
}

func (c *AuditClient) Verify(ctx context.Context, ref, authToken string) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/api/audit/bookings/"+ref, nil, nil, authToken, &out); err != nil {
		return nil, err
	}
	return out, nil
}
