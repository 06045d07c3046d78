package events

import "time"

// Event type codes emitted by the assistant flow.
const (
	TypeAssistantTurnCompleted = "ASSISTANT_TURN_COMPLETED"
	TypeIntentDenied           = "INTENT_DENIED"
	TypeAgentFailed            = "AGENT_FAILED"
)

// NewAssistantTurnCompleted is emitted after every answered message so the
// audit pipeline can reconstruct who asked what and how it was classified.
func NewAssistantTurnCompleted(conversationID, userID, intentName, classifier, traceID string, confidence float64) Event {
	return BaseEvent{
		Type: TypeAssistantTurnCompleted,
		Data: map[string]interface{}{
			"conversation_id": conversationID,
			"user_id":         userID,
			"intent":          intentName,
			"classifier":      classifier,
			"confidence":      confidence,
			"trace_id":        traceID,
		},
		OccurredAt: time.Now(),
	}
}

// NewIntentDenied records an access policy refusal.
func NewIntentDenied(role, intentName, traceID string) Event {
	return BaseEvent{
		Type: TypeIntentDenied,
		Data: map[string]interface{}{
			"role":     role,
			"intent":   intentName,
			"trace_id": traceID,
		},
		OccurredAt: time.Now(),
	}
}

// NewAgentFailed records a handler failure absorbed by the dispatcher.
func NewAgentFailed(intentName, traceID, reason string) Event {
	return BaseEvent{
		Type: TypeAgentFailed,
		Data: map[string]interface{}{
			"intent":   intentName,
			"trace_id": traceID,
			"reason":   reason,
		},
		OccurredAt: time.Now(),
	}
}
