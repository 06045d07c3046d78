package agent

import (
	"context"
	"errors"
	"testing"

	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/pkg/intent"
)

type stubAgent struct {
	resp *Response
	err  error
	boom bool
}

func (s stubAgent) Run(_ context.Context, req *Context) (*Response, error) {
	if s.boom {
		panic("stub exploded")
	}
	return s.resp, s.err
}

func newTestContext() *Context {
	return &Context{Message: "hi", TraceID: "trace-1", Role: "ADMIN", Entities: intent.Entities{}}
}

func TestRegistryRejectsBadRegistrations(t *testing.T) {
	r := NewRegistry(logger.NopLogger{})
	if err := r.Register("made_up_intent", stubAgent{}); err == nil {
		t.Error("expected error for out-of-vocabulary intent")
	}
	if err := r.Register(intent.Help, nil); err == nil {
		t.Error("expected error for nil agent")
	}
	if err := r.Register(intent.Help, stubAgent{}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(intent.Help, stubAgent{}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestDispatchNotImplemented(t *testing.T) {
	r := NewRegistry(logger.NopLogger{})
	resp := r.Dispatch(context.Background(), intent.BookingStatus, newTestContext())
	if resp.Data["status"] != StatusNotImplemented {
		t.Fatalf("status = %v, want %s", resp.Data["status"], StatusNotImplemented)
	}
	if resp.Proofs["trace_id"] != "trace-1" {
		t.Errorf("trace_id = %v, want trace-1", resp.Proofs["trace_id"])
	}
}

func TestDispatchConvertsErrorToEnvelope(t *testing.T) {
	r := NewRegistry(logger.NopLogger{})
	r.MustRegister(intent.Help, stubAgent{err: errors.New("backend down")})
	resp := r.Dispatch(context.Background(), intent.Help, newTestContext())
	if resp.Data["status"] != StatusError {
		t.Fatalf("status = %v, want %s", resp.Data["status"], StatusError)
	}
	if resp.Data["error_type"] != "agent_failure" {
		t.Errorf("error_type = %v, want agent_failure", resp.Data["error_type"])
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	r := NewRegistry(logger.NopLogger{})
	r.MustRegister(intent.Help, stubAgent{boom: true})
	resp := r.Dispatch(context.Background(), intent.Help, newTestContext())
	if resp == nil {
		t.Fatal("panic escaped as nil response")
	}
	if resp.Data["status"] != StatusError {
		t.Fatalf("status = %v, want %s", resp.Data["status"], StatusError)
	}
	if resp.Proofs["trace_id"] != "trace-1" {
		t.Errorf("trace_id = %v, want trace-1", resp.Proofs["trace_id"])
	}
}

func TestDispatchNilResponseBecomesError(t *testing.T) {
	r := NewRegistry(logger.NopLogger{})
	r.MustRegister(intent.Help, stubAgent{})
	resp := r.Dispatch(context.Background(), intent.Help, newTestContext())
	if resp.Data["status"] != StatusError {
		t.Fatalf("status = %v, want %s", resp.Data["status"], StatusError)
	}
}
