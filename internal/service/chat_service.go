package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"ai-portgate-be/internal/client"
	"ai-portgate-be/internal/dto"
	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/internal/repository/contract"
	"ai-portgate-be/pkg/agent"
	"ai-portgate-be/pkg/assistant"
	"ai-portgate-be/pkg/intent"
)

// historyCap limits how many cached turns a conversation keeps; the
// backend owns the full transcript.
const historyCap = 20

type IChatService interface {
	SendMessage(ctx context.Context, userID, role, authToken string, req dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, conversationID, authToken string) ([]dto.TurnDTO, error)
	ClearHistory(ctx context.Context, conversationID, authToken string) error
}

type chatService struct {
	orchestrator  *assistant.Orchestrator
	history       *client.HistoryClient
	conversations contract.IConversationRepository
	publisher     IPublisherService
	logger        logger.ILogger
}

func NewChatService(
	orchestrator *assistant.Orchestrator,
	history *client.HistoryClient,
	conversations contract.IConversationRepository,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		orchestrator:  orchestrator,
		history:       history,
		conversations: conversations,
		publisher:     publisher,
		logger:        log,
	}
}

// SendMessage runs one full turn: load history, classify and dispatch,
// remember the exchange, and hand the persistence work to the bus.
func (s *chatService) SendMessage(ctx context.Context, userID, role, authToken string, req dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	conversationID := req.ConversationId
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	modality := req.Modality
	if modality == "" {
		modality = "text"
	}

	turns := s.loadHistory(ctx, conversationID, authToken)

	envelope := s.orchestrator.Handle(ctx, assistant.Request{
		Message:            req.Message,
		History:            turns,
		Role:               role,
		UserID:             userID,
		AuthToken:          authToken,
		Modality:           modality,
		ForceDeterministic: req.Deterministic,
	})

	intentName, _ := envelope.Proofs["intent"].(string)
	classifier, _ := envelope.Proofs["classifier"].(string)
	confidence, _ := envelope.Proofs["confidence"].(float64)
	traceID, _ := envelope.Proofs["trace_id"].(string)
	status, _ := envelope.Data["status"].(string)
	errorType, _ := envelope.Data["error_type"].(string)

	turns = append(turns,
		intent.Turn{Role: "user", Content: req.Message, Intent: intentName},
		intent.Turn{Role: "assistant", Content: envelope.Message, Intent: intentName},
	)
	if len(turns) > historyCap {
		turns = turns[len(turns)-historyCap:]
	}
	if err := s.conversations.SaveTurns(ctx, conversationID, turns); err != nil {
		s.logger.Warn("chat.service", "failed to cache conversation", map[string]interface{}{
			"conversation_id": conversationID,
			"error":           err.Error(),
		})
	}

	if s.publisher != nil {
		err := s.publisher.PublishTurnCompleted(ctx, dto.TurnCompletedMessage{
			ConversationId:   conversationID,
			UserId:           userID,
			Role:             role,
			UserMessage:      req.Message,
			AssistantMessage: envelope.Message,
			Intent:           intentName,
			Classifier:       classifier,
			Confidence:       confidence,
			Status:           status,
			ErrorType:        errorType,
			TraceId:          traceID,
		})
		if err != nil {
			s.logger.Warn("chat.service", "failed to enqueue turn event", map[string]interface{}{
				"conversation_id": conversationID,
				"error":           err.Error(),
			})
		}
	}

	return &dto.SendMessageResponse{
		ConversationId: conversationID,
		Message:        envelope.Message,
		Data:           envelope.Data,
		Proofs:         envelope.Proofs,
	}, nil
}

// loadHistory prefers the local cache and falls back to the backend. A
// failing history source degrades to an empty conversation instead of
// failing the message.
func (s *chatService) loadHistory(ctx context.Context, conversationID, authToken string) []intent.Turn {
	if turns, found, err := s.conversations.GetTurns(ctx, conversationID); err == nil && found {
		return turns
	}
	if s.history == nil {
		return nil
	}
	turns, err := s.history.Fetch(ctx, conversationID, authToken)
	if err != nil {
		s.logger.Warn("chat.service", "history fetch failed", map[string]interface{}{
			"conversation_id": conversationID,
			"error":           err.Error(),
		})
		return nil
	}
	return turns
}

func (s *chatService) GetHistory(ctx context.Context, conversationID, authToken string) ([]dto.TurnDTO, error) {
	turns, found, err := s.conversations.GetTurns(ctx, conversationID)
	if err != nil || !found {
		if s.history == nil {
			return []dto.TurnDTO{}, nil
		}
		turns, err = s.history.Fetch(ctx, conversationID, authToken)
		if err != nil {
			return nil, err
		}
	}

	out := make([]dto.TurnDTO, 0, len(turns))
	for _, t := range turns {
		out = append(out, dto.TurnDTO{Role: t.Role, Content: t.Content, Intent: t.Intent})
	}
	return out, nil
}

func (s *chatService) ClearHistory(ctx context.Context, conversationID, authToken string) error {
	if err := s.conversations.Delete(ctx, conversationID); err != nil {
		s.logger.Warn("chat.service", "failed to evict cached conversation", map[string]interface{}{
			"conversation_id": conversationID,
			"error":           err.Error(),
		})
	}
	if s.history == nil {
		return nil
	}
	err := s.history.Clear(ctx, conversationID, authToken)
	if ue, ok := err.(*agent.UpstreamError); ok && ue.Status == http.StatusNotFound {
		return nil
	}
	return err
}
