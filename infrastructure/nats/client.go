package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"buildboard/pkg/logger"
)

// Client ห่อ NATS core connection (pub/sub เท่านั้น ไม่ใช้ JetStream)
type Client struct {
	conn *nats.Conn
}

type ClientConfig struct {
	URL  string // nats://localhost:4222
	Name string
}

func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL)
	return &Client{conn: nc}, nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close drain ก่อนปิด เพื่อให้ message ที่ค้างถูกส่งออกไป
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
	logger.Info("NATS connection closed")
}
