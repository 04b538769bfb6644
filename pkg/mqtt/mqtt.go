// Package mqtt publishes moderation case events to an MQTT broker so
// external consumers (dashboard, audit pipelines) can follow the case log in
// real time.
package mqtt

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// caseTopic is the per-guild topic pattern for case events
const caseTopic = "guard/cases/%d"

// CaseEvent is the wire format for a published case.
type CaseEvent struct {
	EventID string       `json:"eventId"`
	Case    *models.Case `json:"case"`
}

// CaseFeed publishes recorded moderation cases to the broker.
type CaseFeed struct {
	client   mqtt.Client
	clientID string
}

var (
	feed *CaseFeed
	once sync.Once
)

// Init initializes the global case feed
func Init(host, port, username, password, clientID string) *CaseFeed {
	once.Do(func() {
		feed = NewCaseFeed(host, port, username, password, clientID)
	})
	return feed
}

// Get returns the global case feed, or nil when MQTT is disabled
func Get() *CaseFeed {
	return feed
}

// NewCaseFeed connects to the broker and returns a publisher.
func NewCaseFeed(host, port, username, password, clientID string) *CaseFeed {
	cf := &CaseFeed{clientID: clientID}

	uniqueID := fmt.Sprintf("%s_%s", clientID, uuid.New().String())

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID(uniqueID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success(fmt.Sprintf("Conectado al broker MQTT como %s", clientID), "MQTT")
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("Conexión MQTT perdida: %v", err), "MQTT")
		})

	cf.client = mqtt.NewClient(opts)

	token := cf.client.Connect()
	if token.Wait() && token.Error() != nil {
		logger.Error(fmt.Sprintf("Error de conexión MQTT: %v", token.Error()), "MQTT")
	}

	return cf
}

// Destroy closes the broker connection
func (cf *CaseFeed) Destroy() {
	if cf.client != nil && cf.client.IsConnected() {
		cf.client.Disconnect(250)
		logger.System("Conexión MQTT cerrada exitosamente.", "MQTT")
	} else {
		logger.Warn("El cliente MQTT no estaba conectado, no se necesita cerrar.", "MQTT")
	}
}

// IsConnected returns true if connected to the broker
func (cf *CaseFeed) IsConnected() bool {
	return cf.client != nil && cf.client.IsConnected()
}

// PublishCase publishes a recorded case on the guild's topic. Failures are
// logged and swallowed: the feed is advisory, the stored case is the source
// of truth.
func (cf *CaseFeed) PublishCase(c *models.Case) {
	if !cf.IsConnected() {
		return
	}

	event := CaseEvent{
		EventID: uuid.New().String(),
		Case:    c,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error(fmt.Sprintf("Error serializando el caso #%d para MQTT: %v", c.CaseID, err), "MQTT")
		return
	}

	topic := fmt.Sprintf(caseTopic, c.GuildID)
	token := cf.client.Publish(topic, 0, false, payload)
	token.Wait()
	if token.Error() != nil {
		logger.Error(fmt.Sprintf("Error publicando el caso #%d en %s: %v", c.CaseID, topic, token.Error()), "MQTT")
	}
}

// Subscribe subscribes to a topic with a message handler. Used by tooling
// that consumes the case feed in-process.
func (cf *CaseFeed) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := cf.client.Subscribe(topic, 0, func(c mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

// Unsubscribe removes a subscription
func (cf *CaseFeed) Unsubscribe(topic string) error {
	token := cf.client.Unsubscribe(topic)
	token.Wait()
	return token.Error()
}
