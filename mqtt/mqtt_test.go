package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-gallery-backend/dto"
	"ui-gallery-backend/models"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func newFakeToken(err error, completed bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if completed {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool {
	<-t.done
	return true
}

func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }

func (t *fakeToken) Done() <-chan struct{} { return t.done }

func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient records publishes; other paho.Client methods are not used.
type fakeClient struct {
	paho.Client
	messages []published
	token    *fakeToken
}

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) paho.Token {
	c.messages = append(c.messages, published{topic: topic, qos: qos, payload: payload.([]byte)})
	if c.token != nil {
		return c.token
	}
	return newFakeToken(nil, true)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "gallery/components/7/status", Topic("gallery", dto.ModerationEvent{ComponentID: 7, Action: dto.ActionStatusChanged}))
	assert.Equal(t, "gallery/components/7/deleted", Topic("gallery", dto.ModerationEvent{ComponentID: 7, Action: dto.ActionDeleted}))
}

func TestPublishModeration(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "gallery")
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	err := p.PublishModeration(context.Background(), dto.ModerationEvent{
		ComponentID: 3,
		Action:      dto.ActionStatusChanged,
		Status:      models.StatusAccepted,
		ModeratorID: 1,
		At:          at,
	})
	require.NoError(t, err)
	require.Len(t, client.messages, 1)

	msg := client.messages[0]
	assert.Equal(t, "gallery/components/3/status", msg.topic)
	assert.Equal(t, qosAtLeastOnce, msg.qos)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.payload, &body))
	assert.Equal(t, "ACCEPTED", body["status"])
	assert.Equal(t, float64(3), body["component_id"])
	assert.Equal(t, float64(1), body["moderator_id"])
}

func TestPublish_RawPayloads(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "gallery")

	require.NoError(t, p.Publish(context.Background(), "t", "on"))
	require.NoError(t, p.Publish(context.Background(), "t", []byte("off")))
	assert.Equal(t, []byte("on"), client.messages[0].payload)
	assert.Equal(t, []byte("off"), client.messages[1].payload)
}

func TestPublish_Errors(t *testing.T) {
	client := &fakeClient{token: newFakeToken(errors.New("not connected"), true)}
	p := NewPublisher(client, "gallery")
	assert.EqualError(t, p.Publish(context.Background(), "t", "x"), "not connected")

	client.token = newFakeToken(nil, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "t", "x"), context.Canceled)

	assert.Error(t, p.Publish(context.Background(), "t", func() {}))
}
