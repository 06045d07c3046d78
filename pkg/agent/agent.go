// Package agent defines the uniform execution contract between the
// orchestrator and the specialized intent handlers, plus the registry that
// dispatches to them. Every handler returns the same envelope shape so
// callers can inspect outcomes without knowing which agent ran.
package agent

import (
	"context"

	"ai-portgate-be/pkg/intent"
)

// Context bundles everything a handler may need for one invocation. Built
// fresh per request by the orchestrator and discarded afterwards.
type Context struct {
	Message    string
	Entities   intent.Entities
	History    []intent.Turn
	Role       string
	UserID     string
	TraceID    string
	AuthToken  string
	Intent     string
	Confidence float64
	Reasoning  []string
	Modality   string // "text" or "voice"
}

// Response is the uniform envelope every agent returns. Data always carries
// a "status" field so callers detect success vs error without parsing
// Message; Proofs always carries the trace id.
type Response struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Proofs  map[string]any `json:"proofs"`
}

// Agent is the single capability a handler exposes. Implementations report
// expected failures (missing auth, missing entity, downstream 4xx/5xx) as
// structured data inside the envelope and reserve the error return for
// genuinely unexpected conditions.
type Agent interface {
	Run(ctx context.Context, req *Context) (*Response, error)
}

// statuses carried in Data["status"]
const (
	StatusOK              = "ok"
	StatusError           = "error"
	StatusForbidden       = "forbidden"
	StatusNotImplemented  = "not_implemented"
	StatusValidationError = "validation_error"
)

// OK builds a success envelope. data may be nil.
func OK(message string, data map[string]any, traceID string) *Response {
	if data == nil {
		data = map[string]any{}
	}
	data["status"] = StatusOK
	return &Response{
		Message: message,
		Data:    data,
		Proofs:  map[string]any{"trace_id": traceID},
	}
}

// Errorf builds a structured error envelope tagged with an error kind.
func Errorf(kind, message, traceID string) *Response {
	return &Response{
		Message: message,
		Data: map[string]any{
			"status":     StatusError,
			"error_type": kind,
		},
		Proofs: map[string]any{"trace_id": traceID},
	}
}

// ValidationError reports a missing or malformed user-supplied field.
func ValidationError(field, message, traceID string) *Response {
	return &Response{
		Message: message,
		Data: map[string]any{
			"status": StatusValidationError,
			"field":  field,
		},
		Proofs: map[string]any{"trace_id": traceID},
	}
}

// Forbidden builds the terminal denial envelope for an unauthorized intent.
func Forbidden(role, intentName, traceID string) *Response {
	return &Response{
		Message: "Your role (" + role + ") is not allowed to perform this action.",
		Data: map[string]any{
			"status": StatusForbidden,
			"intent": intent.Forbidden,
			"denied": intentName,
			"role":   role,
		},
		Proofs: map[string]any{"trace_id": traceID},
	}
}

// NotImplemented reports an authorized intent with no registered handler.
func NotImplemented(intentName, traceID string) *Response {
	return &Response{
		Message: "This capability is not available yet.",
		Data: map[string]any{
			"status": StatusNotImplemented,
			"intent": intent.NotImplemented,
			"asked":  intentName,
		},
		Proofs: map[string]any{"trace_id": traceID},
	}
}
