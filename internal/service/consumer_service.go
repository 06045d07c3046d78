package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-portgate-be/internal/client"
	"ai-portgate-be/internal/dto"
	"ai-portgate-be/pkg/agent"
	"ai-portgate-be/pkg/events"
	"ai-portgate-be/pkg/intent"
	pkgNats "ai-portgate-be/pkg/nats"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process bus: it persists finished turns to
// the history backend and forwards an audit event to NATS. Both targets
// are best-effort; a dead history backend must never block the chat path.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	history      *client.HistoryClient
	natsPub      *pkgNats.Publisher
	serviceToken string
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	history *client.HistoryClient,
	natsPub *pkgNats.Publisher,
	serviceToken string,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		history:      history,
		natsPub:      natsPub,
		serviceToken: serviceToken,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TurnCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal turn message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if cs.history != nil && payload.ConversationId != "" {
		turns := []intent.Turn{
			{Role: "user", Content: payload.UserMessage, Intent: payload.Intent},
			{Role: "assistant", Content: payload.AssistantMessage, Intent: payload.Intent},
		}
		for _, turn := range turns {
			if err := cs.history.Append(ctx, payload.ConversationId, turn, cs.serviceToken); err != nil {
				log.Printf("[ERROR] Failed to persist turn for %s: %v", payload.ConversationId, err)
				if _, rejected := err.(*agent.UpstreamError); !rejected {
					msg.Nack() // transport problem, retry
					return
				}
				// the backend rejected the turn, retrying won't help
				break
			}
		}
	}

	if cs.natsPub != nil {
		for _, evt := range auditEvents(payload) {
			if err := cs.natsPub.Publish(ctx, evt); err != nil {
				log.Printf("[WARN] Failed to publish audit event: %v", err)
			}
		}
	}

	msg.Ack()
}

// auditEvents derives the audit trail for one finished turn. Every turn
// yields a completion event; denied and failed turns additionally emit
// their dedicated event so downstream consumers can alert on them without
// parsing envelopes.
func auditEvents(p dto.TurnCompletedMessage) []events.Event {
	evts := []events.Event{
		events.NewAssistantTurnCompleted(
			p.ConversationId,
			p.UserId,
			p.Intent,
			p.Classifier,
			p.TraceId,
			p.Confidence,
		),
	}
	switch p.Status {
	case agent.StatusForbidden:
		evts = append(evts, events.NewIntentDenied(p.Role, p.Intent, p.TraceId))
	case agent.StatusError:
		evts = append(evts, events.NewAgentFailed(p.Intent, p.TraceId, p.ErrorType))
	}
	return evts
}
