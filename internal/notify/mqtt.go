// Package notify publishes recording-schedule events to the MQTT broker the
// recorders subscribe to.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// Publisher announces schedule changes.
type Publisher interface {
	ScheduleUpdated(cameraID, slots int) error
	ModeChanged(cameraID int, from, to string) error
}

// ScheduleUpdatedMessage is published on <prefix>/cameras/<id>/schedule.
type ScheduleUpdatedMessage struct {
	Type      string `json:"type"`
	CameraID  int    `json:"camera_id"`
	Slots     int    `json:"slots"`
	Timestamp int64  `json:"timestamp"`
}

// ModeChangedMessage is published, retained, on <prefix>/cameras/<id>/mode.
type ModeChangedMessage struct {
	Type      string `json:"type"`
	CameraID  int    `json:"camera_id"`
	From      string `json:"from"`
	Mode      string `json:"mode"`
	Timestamp int64  `json:"timestamp"`
}

type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type MQTTPublisher struct {
	client tokenPublisher
	prefix string
	now    func() time.Time
}

var _ Publisher = (*MQTTPublisher)(nil)

// Connect dials the broker and returns a publisher for topic prefix.
func Connect(brokerURL, clientID, prefix string) (*MQTTPublisher, mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Str("broker", brokerURL).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return NewPublisher(client, prefix), client, nil
}

func NewPublisher(client tokenPublisher, prefix string) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: prefix, now: time.Now}
}

func (p *MQTTPublisher) ScheduleUpdated(cameraID, slots int) error {
	return p.publish(p.topic(cameraID, "schedule"), false, ScheduleUpdatedMessage{
		Type:      "schedule_updated",
		CameraID:  cameraID,
		Slots:     slots,
		Timestamp: p.now().Unix(),
	})
}

func (p *MQTTPublisher) ModeChanged(cameraID int, from, to string) error {
	return p.publish(p.topic(cameraID, "mode"), true, ModeChangedMessage{
		Type:      "mode_changed",
		CameraID:  cameraID,
		From:      from,
		Mode:      to,
		Timestamp: p.now().Unix(),
	})
}

func (p *MQTTPublisher) topic(cameraID int, kind string) string {
	return fmt.Sprintf("%s/cameras/%d/%s", p.prefix, cameraID, kind)
}

func (p *MQTTPublisher) publish(topic string, retained bool, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	token := p.client.Publish(topic, 1, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Msg("MQTT message published")
	return nil
}

// Nop discards every event; used when no broker is configured.
type Nop struct{}

func (Nop) ScheduleUpdated(int, int) error        { return nil }
func (Nop) ModeChanged(int, string, string) error { return nil }
