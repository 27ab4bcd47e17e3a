package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayleenrq/urbane/internal/contextkeys"
	"github.com/ayleenrq/urbane/internal/core/domain"
	"github.com/ayleenrq/urbane/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// ViewingRequestMessage - тело сообщения viewing.requested
type ViewingRequestMessage struct {
	ID         string    `json:"id"`
	PropertyID int       `json:"property_id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Message    string    `json:"message,omitempty"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publisher - то, что адаптеру нужно от pkg/rabbitmq.Publisher
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

type ViewingRequestPublisherAdapter struct {
	producer   Publisher
	routingKey string
}

func NewViewingRequestPublisherAdapter(producer Publisher, routingKey string) (*ViewingRequestPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &ViewingRequestPublisherAdapter{producer: producer, routingKey: routingKey}, nil
}

func toMessage(req domain.ViewingRequest) ViewingRequestMessage {
	return ViewingRequestMessage{
		ID:         req.ID.String(),
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		Source:     string(req.Source),
		CreatedAt:  req.CreatedAt,
	}
}

func (a *ViewingRequestPublisherAdapter) PublishViewingRequest(ctx context.Context, req domain.ViewingRequest) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ViewingRequestPublisherAdapter",
		"routing_key": a.routingKey,
		"request_id":  req.ID.String(),
	})

	body, err := json.Marshal(toMessage(req))
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: marshal viewing request: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    req.ID.String(),
		Timestamp:    req.CreatedAt,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish viewing request", err, nil)
		return fmt.Errorf("rabbitmq adapter: %w", err)
	}

	adapterLogger.Debug("Viewing request published", nil)
	return nil
}

// LoggingViewingRequestPublisher используется, когда брокер выключен: заявка только пишется в лог.
type LoggingViewingRequestPublisher struct{}

func (LoggingViewingRequestPublisher) PublishViewingRequest(ctx context.Context, req domain.ViewingRequest) error {
	contextkeys.LoggerFromContext(ctx).Info("Viewing request received (broker disabled)", port.Fields{
		"request_id":  req.ID.String(),
		"property_id": req.PropertyID,
		"source":      req.Source,
	})
	return nil
}
