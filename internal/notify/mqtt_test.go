package notify

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	err      error
	complete bool
}

func (t *fakeToken) Wait() bool                     { return t.complete }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.complete }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type published struct {
	topic    string
	retained bool
	payload  []byte
}

type fakeClient struct {
	sent  []published
	token *fakeToken
}

func (c *fakeClient) Publish(topic string, _ byte, retained bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, retained: retained, payload: payload.([]byte)})
	return c.token
}

func TestModeChangedIsRetained(t *testing.T) {
	client := &fakeClient{token: &fakeToken{complete: true}}
	p := NewPublisher(client, "warden")
	p.now = func() time.Time { return time.Unix(1700000000, 0) }

	require.NoError(t, p.ModeChanged(4, "continuous", "motion"))
	require.Len(t, client.sent, 1)
	assert.Equal(t, "warden/cameras/4/mode", client.sent[0].topic)
	assert.True(t, client.sent[0].retained)

	var msg ModeChangedMessage
	require.NoError(t, json.Unmarshal(client.sent[0].payload, &msg))
	assert.Equal(t, ModeChangedMessage{Type: "mode_changed", CameraID: 4, From: "continuous", Mode: "motion", Timestamp: 1700000000}, msg)
}

func TestScheduleUpdated(t *testing.T) {
	client := &fakeClient{token: &fakeToken{complete: true}}
	p := NewPublisher(client, "site-a")

	require.NoError(t, p.ScheduleUpdated(9, 3))
	assert.Equal(t, "site-a/cameras/9/schedule", client.sent[0].topic)
	assert.False(t, client.sent[0].retained)
}

func TestPublishErrors(t *testing.T) {
	p := NewPublisher(&fakeClient{token: &fakeToken{complete: false}}, "warden")
	assert.ErrorContains(t, p.ScheduleUpdated(1, 0), "timed out")

	p = NewPublisher(&fakeClient{token: &fakeToken{complete: true, err: errors.New("not connected")}}, "warden")
	assert.ErrorContains(t, p.ModeChanged(1, "", "events"), "not connected")
}
