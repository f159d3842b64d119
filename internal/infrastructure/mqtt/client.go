package mqtt

import (
	"fmt"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/rowanveitch/ember-core/internal/infrastructure/config"
)

// Client wraps paho.mqtt.golang for the event mirror.
//
// It provides connection management, message publishing, and automatic
// reconnection with exponential backoff. The simulation core never
// subscribes; the mirror is publish-only.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client  pahomqtt.Client
	options *pahomqtt.ClientOptions
	cfg     config.MQTTConfig

	// connected tracks current connection state.
	connected bool
	connMu    sync.RWMutex

	// Callbacks for connection events (optional, set via SetOnConnect/SetOnDisconnect).
	onConnect    func()
	onDisconnect func(err error)
	callbackMu   sync.RWMutex
}

// Connect establishes a connection to the MQTT broker.
//
// It performs the following setup:
//  1. Builds connection options from config (broker URL, auth, TLS)
//  2. Configures Last Will and Testament (LWT) for offline detection
//  3. Sets up auto-reconnect with exponential backoff
//  4. Attempts initial connection with timeout
func Connect(cfg config.MQTTConfig) (*Client, error) {
	opts := buildClientOptions(cfg)
	configureLWT(opts, cfg.Broker.ClientID)

	c := &Client{
		cfg:     cfg,
		options: opts,
	}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.handleConnect()
	})

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.handleDisconnect(err)
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// Set connected state immediately after successful connection.
	// The OnConnectHandler callback runs asynchronously and may not have
	// fired yet.
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	// Announce online status (retained so late subscribers see it)
	statusTopic := StatusTopic(cfg.Broker.ClientID)
	_ = c.Publish(statusTopic, []byte(`{"status":"online"}`), byte(cfg.QoS), true) //nolint:errcheck // Status is advisory

	return c, nil
}

// handleConnect is called when the connection is (re)established.
func (c *Client) handleConnect() {
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	c.callbackMu.RLock()
	callback := c.onConnect
	c.callbackMu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleDisconnect is called when the connection is lost.
func (c *Client) handleDisconnect(err error) {
	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	c.callbackMu.RLock()
	callback := c.onDisconnect
	c.callbackMu.RUnlock()

	if callback != nil {
		callback(err)
	}
}

// SetOnConnect registers a callback invoked on every (re)connection.
func (c *Client) SetOnConnect(fn func()) {
	c.callbackMu.Lock()
	c.onConnect = fn
	c.callbackMu.Unlock()
}

// SetOnDisconnect registers a callback invoked when the connection drops.
func (c *Client) SetOnDisconnect(fn func(err error)) {
	c.callbackMu.Lock()
	c.onDisconnect = fn
	c.callbackMu.Unlock()
}

// IsConnected reports whether the client currently holds a broker connection.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}

// Publish sends a message to the specified MQTT topic.
//
// QoS Levels:
//   - 0: At most once (fire and forget)
//   - 1: At least once (guaranteed delivery, may duplicate)
//   - 2: Exactly once (guaranteed, no duplicates, higher overhead)
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// Close disconnects from the broker gracefully.
//
// It publishes an offline status message before disconnecting so consumers
// can distinguish clean shutdown from connection loss (the LWT covers the
// latter).
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() {
		statusTopic := StatusTopic(c.cfg.Broker.ClientID)
		_ = c.Publish(statusTopic, []byte(`{"status":"offline"}`), byte(c.cfg.QoS), true) //nolint:errcheck // Best effort on shutdown
	}

	c.client.Disconnect(defaultDisconnectQuiesce)

	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	return nil
}
