package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisherConfigValidate(t *testing.T) {
	assert.NoError(t, PublisherConfig{}.Validate())
	assert.NoError(t, PublisherConfig{ExchangeName: "listing_exchange", ExchangeType: "direct", DeclareExchange: true}.Validate())
	assert.Error(t, PublisherConfig{ExchangeType: "direct", DeclareExchange: true}.Validate())
	assert.Error(t, PublisherConfig{ExchangeName: "listing_exchange", DeclareExchange: true}.Validate())
}

func TestNewPublisherRequiresManager(t *testing.T) {
	_, err := NewPublisher(PublisherConfig{}, nil)
	assert.Error(t, err)
}

func TestNewConnectionManagerRequiresURL(t *testing.T) {
	_, err := NewConnectionManager("", 0, nil)
	assert.Error(t, err)
}
