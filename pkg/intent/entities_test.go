package intent

import "testing"

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name    string
		message string
		key     string
		want    any
	}{
		{"terminal letter", "Book terminal A tomorrow", "terminal", "A"},
		{"terminal lowercase", "availability at terminal b", "terminal", "B"},
		{"gate explicit", "Is gate G5 available?", "gate", "G5"},
		{"gate short form", "Anything free at G12?", "gate", "G12"},
		{"carrier id", "carrier 123 score please", "carrier_id", "123"},
		{"carrier hash", "stats for carrier #456", "carrier_id", "456"},
		{"carrier french", "transporteur 789", "carrier_id", "789"},
		{"booking ref plain", "What's the status of REF123?", "booking_ref", "REF123"},
		{"booking ref hyphen", "Check REF-456", "booking_ref", "REF456"},
		{"booking ref spaced", "ref 789 please", "booking_ref", "REF789"},
		{"iso date", "book for 2026-09-15", "date", "2026-09-15"},
		{"today flag", "slots for today", "date_today", true},
		{"today french", "créneaux pour aujourd'hui", "date_today", true},
		{"tomorrow flag", "book tomorrow", "date_tomorrow", true},
		{"tomorrow french", "réserver demain", "date_tomorrow", true},
		{"yesterday flag", "trucks from yesterday", "date_yesterday", true},
		{"yesterday french", "camions d'hier", "date_yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.message)
			if got[tt.key] != tt.want {
				t.Errorf("ExtractEntities(%q)[%s] = %v, want %v", tt.message, tt.key, got[tt.key], tt.want)
			}
		})
	}
}

// Slot ids keep their hyphens; this regressed once when ids were normalized
// through a digit-only path.
func TestExtractSlotIDKeepsHyphens(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Book SLOT-123 at terminal A", "SLOT-123"},
		{"slot-abc-123 please", "SLOT-ABC-123"},
		{"Reserve SLOT789", "SLOT789"},
		{"I want slot SLOT-456", "SLOT-456"},
	}
	for _, tt := range tests {
		got := ExtractEntities(tt.message)
		if got["slot_id"] != tt.want {
			t.Errorf("ExtractEntities(%q)[slot_id] = %v, want %s", tt.message, got["slot_id"], tt.want)
		}
	}
}

func TestExtractSlotIDIgnoresBareWord(t *testing.T) {
	for _, msg := range []string{"Are there available slots tomorrow?", "I want to reserve a slot"} {
		if got := ExtractEntities(msg); got["slot_id"] != nil {
			t.Errorf("ExtractEntities(%q)[slot_id] = %v, want absent", msg, got["slot_id"])
		}
	}
}

func TestExtractEntitiesRoundTrip(t *testing.T) {
	msg := "Book SLOT-abc-123 at terminal A gate G1 tomorrow for carrier 456"
	got := ExtractEntities(msg)
	want := Entities{
		"slot_id":       "SLOT-ABC-123",
		"terminal":      "A",
		"gate":          "G1",
		"carrier_id":    "456",
		"date_tomorrow": true,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("entity %s = %v, want %v", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("got %d entities %v, want %d", len(got), got, len(want))
	}
}

func TestEntitiesMergeKeepsExisting(t *testing.T) {
	base := Entities{"terminal": "A"}
	merged := base.Merge(Entities{"terminal": "B", "gate": "G2"})
	if merged["terminal"] != "A" {
		t.Errorf("merge overwrote terminal: %v", merged["terminal"])
	}
	if merged["gate"] != "G2" {
		t.Errorf("merge dropped new key: %v", merged["gate"])
	}
}
