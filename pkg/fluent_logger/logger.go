package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config хранит параметры подключения к Fluent Bit.
type Config struct {
	Host         string // "127.0.0.1" или "fluent-bit" в Docker
	Port         int    // обычно 24224
	Timeout      time.Duration
	Async        bool
	MaxRetry     int
	BufferLimit  int
	RequestAck   bool
	SubSecondsTs bool
}

// NewClient создает клиента Fluent Bit. Пинга у протокола нет,
// поэтому ошибки подключения проявятся при первой отправке записи.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("fluent host is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("fluent port must be positive, got %d", cfg.Port)
	}

	client, err := fluent.New(fluent.Config{
		FluentHost:         cfg.Host,
		FluentPort:         cfg.Port,
		Timeout:            cfg.Timeout,
		Async:              cfg.Async,
		MaxRetry:           cfg.MaxRetry,
		BufferLimit:        cfg.BufferLimit,
		RequestAck:         cfg.RequestAck,
		SubSecondPrecision: cfg.SubSecondsTs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent client: %w", err)
	}
	return client, nil
}
