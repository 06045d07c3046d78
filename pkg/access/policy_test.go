package access

import (
	"testing"

	"ai-portgate-be/pkg/intent"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		intent string
		want   bool
	}{
		{"admin audit", "ADMIN", intent.BlockchainAudit, true},
		{"admin analytics", "ADMIN", intent.OperatorAnalytics, true},
		{"operator audit", "OPERATOR", intent.BlockchainAudit, true},
		{"operator analytics", "OPERATOR", intent.OperatorAnalytics, true},
		{"carrier booking", "CARRIER", intent.BookingStatus, true},
		{"carrier create", "CARRIER", intent.BookingCreate, true},
		{"carrier passages", "CARRIER", intent.PassageHistory, true},
		{"carrier audit denied", "CARRIER", intent.BlockchainAudit, false},
		{"carrier analytics denied", "CARRIER", intent.OperatorAnalytics, false},
		{"lowercase role", "carrier", intent.BookingStatus, true},
		{"mixed case role", "Operator", intent.BlockchainAudit, true},
		{"unknown role help", "GUEST", intent.Help, true},
		{"unknown role unknown intent", "GUEST", intent.Unknown, true},
		{"unknown role booking denied", "GUEST", intent.BookingStatus, false},
		{"empty role help", "", intent.Help, true},
		{"empty role booking denied", "", intent.BookingCreate, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.intent); got != tt.want {
				t.Errorf("Allowed(%q, %q) = %v, want %v", tt.role, tt.intent, got, tt.want)
			}
		})
	}
}

func TestAllowedIntentsCarrier(t *testing.T) {
	for _, name := range AllowedIntents("CARRIER") {
		if name == intent.BlockchainAudit || name == intent.OperatorAnalytics {
			t.Errorf("carrier list leaks %s", name)
		}
	}
}

func TestAllowedIntentsUnknownRole(t *testing.T) {
	got := AllowedIntents("visitor")
	if len(got) != 2 {
		t.Fatalf("AllowedIntents(visitor) = %v, want only bypass intents", got)
	}
	for _, name := range got {
		if name != intent.Help && name != intent.Unknown {
			t.Errorf("unexpected intent %s for unknown role", name)
		}
	}
}
