package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig описывает обменник, в который публикует Publisher
type PublisherConfig struct {
	ExchangeName    string
	ExchangeType    string // direct, fanout, topic, headers
	DurableExchange bool
	ExchangeArgs    amqp.Table

	// Если false, обменник должен уже существовать
	DeclareExchange bool

	Logger Logger
}

func (c PublisherConfig) Validate() error {
	if c.DeclareExchange && c.ExchangeName == "" {
		return fmt.Errorf("publisher: exchange name is required when DeclareExchange is true")
	}
	if c.DeclareExchange && c.ExchangeType == "" {
		return fmt.Errorf("publisher: exchange type is required when DeclareExchange is true")
	}
	return nil
}

// Publisher публикует сообщения в один обменник. Канал amqp не потокобезопасен,
// поэтому публикация идет под мьютексом.
type Publisher struct {
	config  PublisherConfig
	manager *ConnectionManager
	channel *amqp.Channel
	mu      sync.Mutex
	logger  Logger
}

func NewPublisher(cfg PublisherConfig, manager *ConnectionManager) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, fmt.Errorf("publisher: connection manager cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NewNoopLogger()
	}

	p := &Publisher{config: cfg, manager: manager, logger: logger}
	if err := p.openChannel(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) openChannel() error {
	_, ch, err := p.manager.Channel()
	if err != nil {
		return fmt.Errorf("publisher: failed to get channel: %w", err)
	}

	if p.config.DeclareExchange {
		p.logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("publisher: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	return nil
}

// Publish отправляет сообщение. Если канал закрылся (например, после переподключения),
// открывает новый и повторяет попытку один раз.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		p.logger.Warn("Publisher channel closed, reopening", "exchange", p.config.ExchangeName)
		if err := p.openChannel(); err != nil {
			return err
		}
	}

	err := p.channel.PublishWithContext(ctx, p.config.ExchangeName, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("publisher: failed to publish message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.logger.Error(err, "Error closing publisher channel")
		return err
	}
	p.logger.Debug("Publisher closed")
	return nil
}
