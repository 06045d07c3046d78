// Package client holds the HTTP clients for the backend microservices the
// agents talk to. Every client shares the same thin JSON transport and
// reports non-2xx answers as agent.UpstreamError so the agents can map
// them to user-facing messages.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-portgate-be/pkg/agent"
)

const defaultRequestTimeout = 10 * time.Second

type baseClient struct {
	name    string
	baseURL string
	http    *http.Client
}

func newBaseClient(name, baseURL string) baseClient {
	return baseClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// doJSON performs one request and decodes the JSON answer into out (when
// out is non-nil). Non-2xx statuses become *agent.UpstreamError.
func (c *baseClient) doJSON(ctx context.Context, method, path string, query url.Values, body any, authToken string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		if !strings.HasPrefix(authToken, "Bearer ") {
			authToken = "Bearer " + authToken
		}
		req.Header.Set("Authorization", authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &agent.UpstreamError{Service: c.name, Status: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", c.name, err)
	}
	return nil
}
