package agent

import (
	"context"
	"fmt"
	"sort"

	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/pkg/intent"
)

// Registry maps intent names to their handlers. Registration happens once
// during bootstrap; after that the map is read-only and safe for unlimited
// concurrent Dispatch calls.
type Registry struct {
	handlers map[string]Agent
	log      logger.ILogger
}

func NewRegistry(log logger.ILogger) *Registry {
	return &Registry{
		handlers: make(map[string]Agent),
		log:      log,
	}
}

// Register binds a handler to an intent. Unknown intents and duplicate
// registrations are rejected here, at startup, rather than surfacing as
// runtime dispatch surprises.
func (r *Registry) Register(intentName string, a Agent) error {
	if !intent.Known(intentName) {
		return fmt.Errorf("register: intent %q is not in the vocabulary", intentName)
	}
	if a == nil {
		return fmt.Errorf("register: nil agent for intent %q", intentName)
	}
	if _, dup := r.handlers[intentName]; dup {
		return fmt.Errorf("register: intent %q already has a handler", intentName)
	}
	r.handlers[intentName] = a
	return nil
}

// MustRegister is Register for bootstrap code where a failure is a
// programming error.
func (r *Registry) MustRegister(intentName string, a Agent) {
	if err := r.Register(intentName, a); err != nil {
		panic(err)
	}
}

// Intents returns the registered intent names, sorted.
func (r *Registry) Intents() []string {
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dispatch runs the handler for intentName and always returns an envelope.
// A missing handler becomes a not_implemented envelope; a handler error or
// panic becomes a generic error envelope. Nothing escapes this boundary.
func (r *Registry) Dispatch(ctx context.Context, intentName string, req *Context) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("agent.dispatch", "handler panicked", map[string]interface{}{
				"intent":   intentName,
				"trace_id": req.TraceID,
				"panic":    fmt.Sprintf("%v", rec),
			})
			resp = Errorf("agent_failure", "Something went wrong while handling your request.", req.TraceID)
		}
	}()

	handler, ok := r.handlers[intentName]
	if !ok {
		r.log.Warn("agent.dispatch", "no handler registered", map[string]interface{}{
			"intent":   intentName,
			"trace_id": req.TraceID,
		})
		return NotImplemented(intentName, req.TraceID)
	}

	out, err := handler.Run(ctx, req)
	if err != nil {
		r.log.Error("agent.dispatch", "handler failed", map[string]interface{}{
			"intent":   intentName,
			"trace_id": req.TraceID,
			"error":    err.Error(),
		})
		return Errorf("agent_failure", "Something went wrong while handling your request.", req.TraceID)
	}
	if out == nil {
		return Errorf("agent_failure", "Something went wrong while handling your request.", req.TraceID)
	}
	return out
}
