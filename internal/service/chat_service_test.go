package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-portgate-be/internal/dto"
	"ai-portgate-be/internal/pkg/logger"
	"ai-portgate-be/internal/repository/memory"
	"ai-portgate-be/pkg/agent"
	"ai-portgate-be/pkg/assistant"
	"ai-portgate-be/pkg/intent"
)

type capturingPublisher struct {
	messages []dto.TurnCompletedMessage
}

func (p *capturingPublisher) PublishTurnCompleted(_ context.Context, payload dto.TurnCompletedMessage) error {
	p.messages = append(p.messages, payload)
	return nil
}

type echoAgent struct{}

func (echoAgent) Run(_ context.Context, req *agent.Context) (*agent.Response, error) {
	return agent.OK("handled "+req.Intent, map[string]any{"intent": req.Intent}, req.TraceID), nil
}

func newTestChatService(t *testing.T) (IChatService, *capturingPublisher) {
	t.Helper()
	reg := agent.NewRegistry(logger.NopLogger{})
	for _, name := range intent.Vocabulary() {
		reg.MustRegister(name, echoAgent{})
	}
	orch := assistant.NewOrchestrator(nil, reg, logger.NopLogger{})
	pub := &capturingPublisher{}
	svc := NewChatService(orch, nil, memory.NewConversationRepository(), pub, logger.NopLogger{})
	return svc, pub
}

func TestSendMessageAssignsConversation(t *testing.T) {
	svc, pub := newTestChatService(t)

	resp, err := svc.SendMessage(context.Background(), "user-1", "CARRIER", "tok",
		dto.SendMessageRequest{Message: "available slots at terminal A tomorrow"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ConversationId)
	assert.Equal(t, intent.SlotAvailability, resp.Proofs["intent"])
	require.Len(t, pub.messages, 1)
	assert.Equal(t, resp.ConversationId, pub.messages[0].ConversationId)
	assert.Equal(t, intent.SlotAvailability, pub.messages[0].Intent)
	assert.Equal(t, "pattern", pub.messages[0].Classifier)
}

func TestSendMessageFollowupUsesCachedHistory(t *testing.T) {
	svc, _ := newTestChatService(t)
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, "user-1", "CARRIER", "tok",
		dto.SendMessageRequest{Message: "status of REF123"})
	require.NoError(t, err)
	require.Equal(t, intent.BookingStatus, first.Proofs["intent"])

	second, err := svc.SendMessage(ctx, "user-1", "CARRIER", "tok", dto.SendMessageRequest{
		Message:        "and terminal A?",
		ConversationId: first.ConversationId,
	})
	require.NoError(t, err)
	assert.Equal(t, intent.BookingStatus, second.Proofs["intent"],
		"short follow-up should resume the previous intent")
}

func TestGetAndClearHistory(t *testing.T) {
	svc, _ := newTestChatService(t)
	ctx := context.Background()

	resp, err := svc.SendMessage(ctx, "user-1", "ADMIN", "tok",
		dto.SendMessageRequest{Message: "help"})
	require.NoError(t, err)

	turns, err := svc.GetHistory(ctx, resp.ConversationId, "tok")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "assistant", turns[1].Role)

	require.NoError(t, svc.ClearHistory(ctx, resp.ConversationId, "tok"))
	turns, err = svc.GetHistory(ctx, resp.ConversationId, "tok")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSendMessageForbiddenEnvelope(t *testing.T) {
	svc, pub := newTestChatService(t)

	resp, err := svc.SendMessage(context.Background(), "user-2", "CARRIER", "tok",
		dto.SendMessageRequest{Message: "Verify booking REF456 on blockchain"})
	require.NoError(t, err)

	assert.Equal(t, agent.StatusForbidden, resp.Data["status"])
	require.Len(t, pub.messages, 1)
	assert.Equal(t, intent.BlockchainAudit, pub.messages[0].Intent)
	assert.Equal(t, agent.StatusForbidden, pub.messages[0].Status)
	assert.Equal(t, "CARRIER", pub.messages[0].Role)
}
