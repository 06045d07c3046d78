package dto

// SendMessageRequest is the inbound chat payload.
type SendMessageRequest struct {
	Message        string `json:"message" validate:"required"`
	ConversationId string `json:"conversation_id,omitempty"`
	Modality       string `json:"modality,omitempty"` // "text" (default) or "voice"
	Deterministic  bool   `json:"deterministic,omitempty"`
}

// SendMessageResponse mirrors the agent envelope plus the conversation the
// turn was appended to.
type SendMessageResponse struct {
	ConversationId string         `json:"conversation_id"`
	Message        string         `json:"message"`
	Data           map[string]any `json:"data"`
	Proofs         map[string]any `json:"proofs"`
}

// TurnDTO is one history turn as returned to the caller.
type TurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Intent  string `json:"intent,omitempty"`
}

// TurnCompletedMessage travels the in-process bus after each answered
// message; the consumer persists it and forwards the audit event.
type TurnCompletedMessage struct {
	ConversationId   string  `json:"conversation_id"`
	UserId           string  `json:"user_id"`
	Role             string  `json:"role"`
	UserMessage      string  `json:"user_message"`
	AssistantMessage string  `json:"assistant_message"`
	Intent           string  `json:"intent"`
	Classifier       string  `json:"classifier"`
	Confidence       float64 `json:"confidence"`
	Status           string  `json:"status"`
	ErrorType        string  `json:"error_type,omitempty"`
	TraceId          string  `json:"trace_id"`
}
