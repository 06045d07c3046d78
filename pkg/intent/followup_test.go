package intent

import "testing"

func TestResolveFollowup(t *testing.T) {
	history := []Turn{
		{Role: "user", Content: "hello", Intent: Help},
		{Role: "user", Content: "slots at terminal A?", Intent: SlotAvailability},
		{Role: "user", Content: "thanks", Intent: Smalltalk},
	}
	unknown := Result{Intent: Unknown, Confidence: 0.5, Reasoning: []string{"no_pattern_matched"}}

	t.Run("short message resumes last actionable intent", func(t *testing.T) {
		got := ResolveFollowup(unknown, "and at gate G2?", history)
		if got.Intent != SlotAvailability {
			t.Fatalf("got %s, want %s", got.Intent, SlotAvailability)
		}
		if got.Confidence != 0.6 {
			t.Fatalf("confidence = %.2f, want 0.60", got.Confidence)
		}
		last := got.Reasoning[len(got.Reasoning)-1]
		if last != "followup_from_history" {
			t.Fatalf("reasoning = %v, want followup_from_history appended", got.Reasoning)
		}
	})

	t.Run("marker word qualifies a long message", func(t *testing.T) {
		got := ResolveFollowup(unknown, "hmm okay fine but what about the one near the north quay then", history)
		if got.Intent != SlotAvailability {
			t.Fatalf("got %s, want %s", got.Intent, SlotAvailability)
		}
	})

	t.Run("french marker", func(t *testing.T) {
		got := ResolveFollowup(unknown, "et aussi pour le terminal B demain si possible hein", history)
		if got.Intent != SlotAvailability {
			t.Fatalf("got %s, want %s", got.Intent, SlotAvailability)
		}
	})

	t.Run("resolved intent is untouched", func(t *testing.T) {
		res := Result{Intent: BookingStatus, Confidence: 0.9}
		if got := ResolveFollowup(res, "and then?", history); got.Intent != BookingStatus {
			t.Fatalf("got %s, want %s", got.Intent, BookingStatus)
		}
	})

	t.Run("no actionable history stays unknown", func(t *testing.T) {
		chat := []Turn{
			{Role: "user", Content: "hi", Intent: Help},
			{Role: "user", Content: "ok", Intent: Smalltalk},
		}
		if got := ResolveFollowup(unknown, "and?", chat); got.Intent != Unknown {
			t.Fatalf("got %s, want %s", got.Intent, Unknown)
		}
	})

	t.Run("empty history stays unknown", func(t *testing.T) {
		if got := ResolveFollowup(unknown, "same again", nil); got.Intent != Unknown {
			t.Fatalf("got %s, want %s", got.Intent, Unknown)
		}
	})

	t.Run("long message without marker stays unknown", func(t *testing.T) {
		msg := "the weather over the harbour is quite foggy this morning isn't it"
		if got := ResolveFollowup(unknown, msg, history); got.Intent != Unknown {
			t.Fatalf("got %s, want %s", got.Intent, Unknown)
		}
	})

	t.Run("newest actionable wins", func(t *testing.T) {
		chat := append(history, Turn{Role: "user", Content: "status of REF123", Intent: BookingStatus})
		if got := ResolveFollowup(unknown, "and now?", chat); got.Intent != BookingStatus {
			t.Fatalf("got %s, want %s", got.Intent, BookingStatus)
		}
	})
}
