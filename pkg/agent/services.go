package agent

import (
	"context"
	"fmt"
	"time"

	"ai-portgate-be/pkg/intent"
)

// Service contracts the domain agents depend on. The HTTP implementations
// live in internal/client; tests substitute in-memory fakes.

type SlotQuery struct {
	Terminal string
	Gate     string
	Date     string // YYYY-MM-DD
}

type BookingCreateRequest struct {
	SlotID    string `json:"slot_id"`
	Terminal  string `json:"terminal"`
	Gate      string `json:"gate,omitempty"`
	Date      string `json:"date"`
	CarrierID string `json:"carrier_id,omitempty"`
}

type PassageQuery struct {
	Terminal string
	Gate     string
	Date     string
}

type AnalyticsQuery struct {
	OperatorID string
	Terminal   string
	RangeDays  int
}

type BookingService interface {
	Status(ctx context.Context, ref, authToken string) (map[string]any, error)
	Create(ctx context.Context, req BookingCreateRequest, authToken string) (map[string]any, error)
}

type SlotService interface {
	Available(ctx context.Context, q SlotQuery, authToken string) ([]map[string]any, error)
}

type PassageService interface {
	History(ctx context.Context, q PassageQuery, authToken string) ([]map[string]any, error)
}

type AuditService interface {
	Verify(ctx context.Context, ref, authToken string) (map[string]any, error)
}

type AnalyticsService interface {
	Overview(ctx context.Context, q AnalyticsQuery, authToken string) (map[string]any, error)
}

// UpstreamError carries a downstream service's HTTP status so agents can
// translate it into a user-facing message instead of a generic failure.
type UpstreamError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.Status)
}

// upstreamMessage maps a failed downstream call to the envelope users see.
func upstreamMessage(err error) string {
	if ue, ok := err.(*UpstreamError); ok {
		switch {
		case ue.Status == 401 || ue.Status == 403:
			return "The backend refused your credentials for this action."
		case ue.Status == 404:
			return "Nothing was found for that reference."
		case ue.Status == 409:
			return "That slot is no longer available."
		case ue.Status >= 500:
			return "The backend service is temporarily unavailable, please retry later."
		}
	}
	return "The backend service could not be reached."
}

// resolveDate turns the extracted date entities into a concrete YYYY-MM-DD
// string. Relative flags are resolved against now; an explicit date wins
// over any flag.
func resolveDate(e intent.Entities, now time.Time) (string, bool) {
	if d, ok := e["date"].(string); ok && d != "" {
		return d, true
	}
	day := now
	switch {
	case e["date_today"] == true:
	case e["date_tomorrow"] == true:
		day = now.AddDate(0, 0, 1)
	case e["date_yesterday"] == true:
		day = now.AddDate(0, 0, -1)
	default:
		return "", false
	}
	return day.Format("2006-01-02"), true
}
