// Package bridge connects to the browser-automation bridge that fronts the
// live table. The bridge owns the browser session, login cookies and DOM
// scraping; this client only asks it for the current table state over a
// persistent websocket, one request per polling tick.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/tablescribe/internal/table"
)

// ErrUnavailable marks a failed snapshot fetch. The polling loop logs it and
// retries on the next natural tick; there is no retry inside the client.
var ErrUnavailable = errors.New("bridge unavailable")

const snapshotRequestType = "get_snapshot"

type request struct {
	Type string `json:"type"`
}

type response struct {
	Type     string             `json:"type"`
	Error    string             `json:"error,omitempty"`
	Snapshot *table.RawSnapshot `json:"snapshot,omitempty"`
}

// Client is a synchronous request/response websocket client for the bridge.
// Safe for use by one polling loop; calls are serialized internally.
type Client struct {
	bridgeURL string
	logger    *log.Logger
	mu        sync.Mutex
	conn      *websocket.Conn
	closeOnce sync.Once
}

// NewClient creates a client for the bridge at bridgeURL (ws:// or wss://).
func NewClient(bridgeURL string, logger *log.Logger) *Client {
	return &Client{
		bridgeURL: bridgeURL,
		logger:    logger.WithPrefix("bridge"),
	}
}

// Connect establishes the websocket connection to the bridge.
func (c *Client) Connect(ctx context.Context) error {
	u, err := url.Parse(c.bridgeURL)
	if err != nil {
		return fmt.Errorf("invalid bridge URL: %w", err)
	}

	c.logger.Info("Connecting to bridge", "url", c.bridgeURL)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrUnavailable, c.bridgeURL, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.logger.Info("Connected to bridge")
	return nil
}

// Snapshot requests the current raw table state. The bridge imposes its own
// latency bounds; a hung bridge blocks the caller, which is acceptable for a
// single-table polling loop.
func (c *Client) Snapshot(ctx context.Context) (*table.RawSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, fmt.Errorf("%w: not connected", ErrUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.conn.WriteJSON(request{Type: snapshotRequestType}); err != nil {
		return nil, fmt.Errorf("%w: write request: %v", ErrUnavailable, err)
	}

	var resp response
	if err := c.conn.ReadJSON(&resp); err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Error)
	}
	if resp.Snapshot == nil {
		return nil, fmt.Errorf("%w: response carried no snapshot", ErrUnavailable)
	}
	return resp.Snapshot, nil
}

// Close releases the websocket connection. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.conn == nil {
			return
		}

		deadline := time.Now().Add(time.Second)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = c.conn.Close()
		c.conn = nil
		c.logger.Info("Bridge connection closed")
	})
	return err
}
