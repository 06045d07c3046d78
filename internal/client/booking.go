package client

import (
	"context"
	"net/http"

	"ai-portgate-be/pkg/agent"
)

// BookingClient talks to the booking microservice.
type BookingClient struct {
	baseClient
}

var _ agent.BookingService = &BookingClient{}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{baseClient: newBaseClient("booking-service", baseURL)}
}

func (c *BookingClient) Status(ctx context.Context, ref, authToken string) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/api/bookings/"+ref, nil, nil, authToken, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) Create(ctx context.Context, req agent.BookingCreateRequest, authToken string) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodPost, "/api/bookings", nil, req, authToken, &out); err != nil {
		return nil, err
	}
	return out, nil
}
