package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/pkg/agent"
	"ai-portgate-be/pkg/intent"
)

// recordingAgent remembers whether and with what context it was invoked.
type recordingAgent struct {
	invoked bool
	lastReq *agent.Context
}

func (r *recordingAgent) Run(_ context.Context, req *agent.Context) (*agent.Response, error) {
	r.invoked = true
	r.lastReq = req
	return agent.OK("done", map[string]any{"intent": req.Intent}, req.TraceID), nil
}

func fullRegistry(t *testing.T) (*agent.Registry, map[string]*recordingAgent) {
	t.Helper()
	reg := agent.NewRegistry(logger.NopLogger{})
	agents := map[string]*recordingAgent{}
	for _, name := range intent.Vocabulary() {
		a := &recordingAgent{}
		agents[name] = a
		reg.MustRegister(name, a)
	}
	return reg, agents
}

func TestHandleDeterministicPath(t *testing.T) {
	reg, agents := fullRegistry(t)
	o := NewOrchestrator(nil, reg, logger.NopLogger{})

	resp := o.Handle(context.Background(), Request{
		Message: "available slots at terminal A tomorrow",
		Role:    "CARRIER",
	})
	if !agents[intent.SlotAvailability].invoked {
		t.Fatal("slot availability agent not invoked")
	}
	if resp.Proofs["classifier"] != "pattern" {
		t.Errorf("classifier = %v", resp.Proofs["classifier"])
	}
	if resp.Proofs["trace_id"] == "" || resp.Proofs["trace_id"] == nil {
		t.Error("trace_id missing")
	}
	got := agents[intent.SlotAvailability].lastReq
	if got.Entities["terminal"] != "A" || got.Entities["date_tomorrow"] != true {
		t.Errorf("entities = %v", got.Entities)
	}
}

// Whatever way the LLM path fails, the final intent must equal what the
// pattern classifier says for the same text.
func TestHandleFallbackMatchesPattern(t *testing.T) {
	msg := "Verify booking REF456 on blockchain"
	want := intent.Classify(msg).Intent

	for name, p := range map[string]*scriptedProvider{
		"transport error": {err: errors.New("boom")},
		"timeout":         {hang: true},
	} {
		t.Run(name, func(t *testing.T) {
			reg, agents := fullRegistry(t)
			c := NewClassifier(p, 50*time.Millisecond, 0.45, logger.NopLogger{})
			o := NewOrchestrator(c, reg, logger.NopLogger{})

			resp := o.Handle(context.Background(), Request{Message: msg, Role: "ADMIN"})
			if resp.Proofs["intent"] != want {
				t.Fatalf("intent = %v, want %v", resp.Proofs["intent"], want)
			}
			if resp.Proofs["classifier"] != "pattern_fallback" {
				t.Errorf("classifier = %v", resp.Proofs["classifier"])
			}
			if !agents[want].invoked {
				t.Error("fallback intent agent not invoked")
			}
			if p.calls != 1 {
				t.Errorf("llm called %d times, want exactly 1", p.calls)
			}
		})
	}
}

func TestHandleForbiddenSkipsDispatch(t *testing.T) {
	reg, agents := fullRegistry(t)
	o := NewOrchestrator(nil, reg, logger.NopLogger{})

	resp := o.Handle(context.Background(), Request{
		Message: "Verify booking REF456 on blockchain",
		Role:    "CARRIER",
	})
	if resp.Data["status"] != agent.StatusForbidden {
		t.Fatalf("status = %v", resp.Data["status"])
	}
	if resp.Data["intent"] != intent.Forbidden {
		t.Errorf("intent = %v, want %s", resp.Data["intent"], intent.Forbidden)
	}
	if agents[intent.BlockchainAudit].invoked {
		t.Error("denied intent must not reach its agent")
	}
}

func TestHandleFollowupAfterUnknown(t *testing.T) {
	reg, agents := fullRegistry(t)
	o := NewOrchestrator(nil, reg, logger.NopLogger{})

	resp := o.Handle(context.Background(), Request{
		Message: "and terminal A?",
		Role:    "CARRIER",
		History: []intent.Turn{{Role: "user", Content: "status REF123", Intent: intent.BookingStatus}},
	})
	if !agents[intent.BookingStatus].invoked {
		t.Fatalf("follow-up did not reach booking status agent (intent=%v)", resp.Proofs["intent"])
	}
}

func TestHandleForceDeterministicSkipsLLM(t *testing.T) {
	p := &scriptedProvider{output: `{"intent": "smalltalk", "confidence": 0.99}`}
	reg, agents := fullRegistry(t)
	c := newTestClassifier(p)
	o := NewOrchestrator(c, reg, logger.NopLogger{})

	o.Handle(context.Background(), Request{
		Message:            "help me",
		Role:               "ADMIN",
		ForceDeterministic: true,
	})
	if p.calls != 0 {
		t.Fatalf("llm called %d times despite force-deterministic", p.calls)
	}
	if !agents[intent.Help].invoked {
		t.Error("pattern-derived help agent not invoked")
	}
}

func TestHandleLLMPathWins(t *testing.T) {
	p := &scriptedProvider{output: `{"intent": "slot_recommendation", "confidence": 0.88, "entities": {"terminal": "B"}}`}
	reg, agents := fullRegistry(t)
	o := NewOrchestrator(newTestClassifier(p), reg, logger.NopLogger{})

	resp := o.Handle(context.Background(), Request{
		Message: "what would you pick for me?",
		Role:    "OPERATOR",
	})
	if resp.Proofs["classifier"] != "llm" {
		t.Fatalf("classifier = %v", resp.Proofs["classifier"])
	}
	got := agents[intent.SlotRecommend]
	if !got.invoked {
		t.Fatal("recommended agent not invoked")
	}
	if got.lastReq.Entities["terminal"] != "B" {
		t.Errorf("llm entity not merged: %v", got.lastReq.Entities)
	}
}

func TestHandleEmptyMessage(t *testing.T) {
	reg, agents := fullRegistry(t)
	o := NewOrchestrator(nil, reg, logger.NopLogger{})

	resp := o.Handle(context.Background(), Request{Message: "", Role: "GUEST"})
	if resp.Proofs["intent"] != intent.Unknown {
		t.Fatalf("intent = %v", resp.Proofs["intent"])
	}
	if resp.Proofs["confidence"] != 1.0 {
		t.Errorf("confidence = %v, want 1.0", resp.Proofs["confidence"])
	}
	if !agents[intent.Unknown].invoked {
		t.Error("unknown agent should still answer")
	}
	if len(agents[intent.Unknown].lastReq.Entities) != 0 {
		t.Errorf("entities = %v, want empty", agents[intent.Unknown].lastReq.Entities)
	}
}

func TestHandleEmptyMessageSkipsLLM(t *testing.T) {
	for name, msg := range map[string]string{
		"empty":      "",
		"whitespace": "   \t ",
	} {
		t.Run(name, func(t *testing.T) {
			p := &scriptedProvider{output: `{"intent": "smalltalk", "confidence": 0.99}`}
			reg, _ := fullRegistry(t)
			o := NewOrchestrator(newTestClassifier(p), reg, logger.NopLogger{})

			resp := o.Handle(context.Background(), Request{Message: msg, Role: "ADMIN"})
			if p.calls != 0 {
				t.Fatalf("llm called %d times for a blank message", p.calls)
			}
			if resp.Proofs["intent"] != intent.Unknown || resp.Proofs["confidence"] != 1.0 {
				t.Errorf("got %v/%v, want unknown/1.0", resp.Proofs["intent"], resp.Proofs["confidence"])
			}
		})
	}
}
