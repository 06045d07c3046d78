package assistant

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/pkg/access"
	"ai-portgate-be/pkg/agent"
	"ai-portgate-be/pkg/intent"
)

// Request is one inbound message with everything the lifecycle needs.
type Request struct {
	Message            string
	History            []intent.Turn
	Role               string
	UserID             string
	AuthToken          string
	TraceID            string
	Modality           string // "text" or "voice"
	ForceDeterministic bool   // skip the LLM path for this request only
}

// Orchestrator drives one request through classify, follow-up, authorize
// and dispatch. Each state runs once; there are no retries. A nil
// classifier means the LLM path is disabled and every request goes
// straight to the pattern table.
type Orchestrator struct {
	classifier *Classifier
	registry   *agent.Registry
	log        logger.ILogger
}

func NewOrchestrator(classifier *Classifier, registry *agent.Registry, log logger.ILogger) *Orchestrator {
	return &Orchestrator{classifier: classifier, registry: registry, log: log}
}

// Handle always returns an envelope; classification failures degrade to
// the pattern path and dispatch failures are absorbed by the registry.
func (o *Orchestrator) Handle(ctx context.Context, req Request) *agent.Response {
	traceID := req.TraceID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	entities := intent.ExtractEntities(req.Message)
	res, source := o.classify(ctx, req, entities, traceID)

	res = intent.ResolveFollowup(res, req.Message, req.History)

	if !access.Allowed(req.Role, res.Intent) {
		o.log.Info("assistant.orchestrator", "intent denied by policy", map[string]interface{}{
			"trace_id": traceID,
			"role":     req.Role,
			"intent":   res.Intent,
		})
		resp := agent.Forbidden(req.Role, res.Intent, traceID)
		annotate(resp, res, source)
		return resp
	}

	resp := o.registry.Dispatch(ctx, res.Intent, &agent.Context{
		Message:    req.Message,
		Entities:   entities,
		History:    req.History,
		Role:       req.Role,
		UserID:     req.UserID,
		TraceID:    traceID,
		AuthToken:  req.AuthToken,
		Intent:     res.Intent,
		Confidence: res.Confidence,
		Reasoning:  res.Reasoning,
		Modality:   req.Modality,
	})
	annotate(resp, res, source)
	return resp
}

// classify picks the LLM path when it is enabled and not forced off, and
// falls back to the pattern table on any adapter failure. The LLM is
// attempted at most once; blank messages never reach it. Entities reported
// by the model are merged under the deterministic ones, which always win
// on conflict.
func (o *Orchestrator) classify(ctx context.Context, req Request, entities intent.Entities, traceID string) (intent.Result, string) {
	if o.classifier == nil || req.ForceDeterministic || strings.TrimSpace(req.Message) == "" {
		return intent.Classify(req.Message), "pattern"
	}

	res, llmEntities, err := o.classifier.Classify(ctx, req.Message, req.History, traceID)
	if err != nil {
		o.log.Warn("assistant.orchestrator", "llm path failed, using pattern classifier", map[string]interface{}{
			"trace_id": traceID,
			"error":    err.Error(),
			"timeout":  err == ErrClassifyTimeout,
		})
		return intent.Classify(req.Message), "pattern_fallback"
	}
	entities.Merge(llmEntities)
	return res, "llm"
}

// annotate records how the envelope's intent was derived. Proofs is the
// natural home: it already carries the trace id.
func annotate(resp *agent.Response, res intent.Result, source string) {
	if resp == nil || resp.Proofs == nil {
		return
	}
	resp.Proofs["classifier"] = source
	resp.Proofs["intent"] = res.Intent
	resp.Proofs["confidence"] = res.Confidence
	resp.Proofs["reasoning"] = res.Reasoning
}
