// mqtt.go - Publishes moderation events to an MQTT broker

package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"ui-gallery-backend/dto"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	qosAtLeastOnce = byte(1)
)

// Publisher sends JSON messages under a topic prefix.
type Publisher struct {
	client paho.Client
	prefix string
}

// Connect dials the broker and returns a Publisher for prefix.
func Connect(broker, clientID, prefix string) (*Publisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("timed out connecting to mqtt broker %s", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker %s: %w", broker, err)
	}
	return NewPublisher(client, prefix), nil
}

// NewPublisher wraps an already connected client.
func NewPublisher(client paho.Client, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix}
}

// Publish sends payload to topic. Strings and byte slices go out as-is,
// anything else is JSON encoded.
func (p *Publisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	var body []byte
	switch v := payload.(type) {
	case string:
		body = []byte(v)
	case []byte:
		body = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode mqtt payload: %w", err)
		}
		body = encoded
	}

	token := p.client.Publish(topic, qosAtLeastOnce, false, body)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return errors.New("timed out publishing to " + topic)
	}
}

// PublishModeration sends event to <prefix>/components/<id>/status or
// <prefix>/components/<id>/deleted.
func (p *Publisher) PublishModeration(ctx context.Context, event dto.ModerationEvent) error {
	return p.Publish(ctx, Topic(p.prefix, event), event)
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// Topic returns the topic an event is published on.
func Topic(prefix string, event dto.ModerationEvent) string {
	suffix := "status"
	if event.Action == dto.ActionDeleted {
		suffix = "deleted"
	}
	return fmt.Sprintf("%s/components/%d/%s", prefix, event.ComponentID, suffix)
}
