package session

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/transport"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// Exchanger performs one request/response exchange with the server.
type Exchanger interface {
	Execute(ctx context.Context, req *protocol.Request) (*protocol.Response, error)
	IsConnected() bool
}

// Connector manages the server connection.
type Connector interface {
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}

// Observer receives exchange and connection events. The metrics service
// implements it.
type Observer interface {
	ObserveExchange(action string, outcome string, duration time.Duration)
	ObserveConnection(event string)
}

// Exchange outcomes reported to the Observer.
const (
	OutcomeSuccess      = "success"
	OutcomeServerError  = "server_error"
	OutcomeParseError   = "parse_error"
	OutcomeLost         = "connection_lost"
	OutcomeIOError      = "io_error"
	OutcomeNotConnected = "not_connected"
)

// Connection events reported to the Observer.
const (
	EventConnected     = "connected"
	EventConnectFailed = "connect_failed"
	EventDisconnected  = "disconnected"
	EventTornDown      = "torn_down"
)

type nopObserver struct{}

func (nopObserver) ObserveExchange(string, string, time.Duration) {}
func (nopObserver) ObserveConnection(string)                      {}

// Options configures a Client.
type Options struct {
	Addr        string
	DialTimeout time.Duration
	// IOTimeout bounds each exchange when the caller's context has no
	// deadline. Zero blocks until the server answers.
	IOTimeout time.Duration
	Dialer    transport.Dialer
	Logger    *zap.Logger
	Observer  Observer
}

// Client owns the single server connection and runs exchanges on it one at
// a time. Disconnect may be called concurrently with a blocked exchange; the
// exchange then fails and reports the teardown.
type Client struct {
	addr      string
	ioTimeout time.Duration
	dialer    transport.Dialer
	logger    *zap.Logger
	observer  Observer

	// exchangeMu serialises Connect and Execute
	exchangeMu sync.Mutex

	connMu  sync.Mutex
	conn    *transport.Conn
	welcome string
}

// NewClient builds a disconnected client.
func NewClient(opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Dialer == nil {
		opts.Dialer = &net.Dialer{Timeout: opts.DialTimeout}
	}

	return &Client{
		addr:      opts.Addr,
		ioTimeout: opts.IOTimeout,
		dialer:    opts.Dialer,
		logger:    opts.Logger,
		observer:  opts.Observer,
	}
}

// Addr returns the server address.
func (c *Client) Addr() string { return c.addr }

// IsConnected reports whether a connection is open.
func (c *Client) IsConnected() bool {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn != nil
}

// Welcome returns the message of the last welcome line.
func (c *Client) Welcome() string {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.welcome
}

// Connect opens the connection and consumes the welcome line. It does
// nothing when already connected. On failure no connection is retained.
func (c *Client) Connect(ctx context.Context) error {
	if c.IsConnected() {
		return nil
	}

	c.exchangeMu.Lock()
	defer c.exchangeMu.Unlock()

	if c.IsConnected() {
		return nil
	}

	conn, err := transport.DialWith(ctx, c.dialer, c.addr)
	if err != nil {
		c.observer.ObserveConnection(EventConnectFailed)
		c.logger.Warn("connect failed", zap.String("addr", c.addr), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrConnection.Code, appErrors.ErrConnection.Status, "could not connect to "+c.addr)
	}

	welcome, err := c.readWelcome(ctx, conn)
	if err != nil {
		c.closeConn(conn)
		c.observer.ObserveConnection(EventConnectFailed)
		c.logger.Warn("welcome handshake failed", zap.String("addr", c.addr), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrConnection.Code, appErrors.ErrConnection.Status, "no welcome from "+c.addr)
	}

	c.connMu.Lock()
	c.conn = conn
	c.welcome = welcome
	c.connMu.Unlock()

	c.observer.ObserveConnection(EventConnected)
	c.logger.Info("connected", zap.String("addr", c.addr), zap.String("welcome", welcome))
	return nil
}

func (c *Client) readWelcome(ctx context.Context, conn *transport.Conn) (string, error) {
	if err := c.applyDeadline(ctx, conn); err != nil {
		return "", err
	}
	defer func() { _ = conn.SetDeadline(time.Time{}) }()

	line, err := conn.ReadLine()
	if err != nil {
		return "", err
	}

	resp, err := protocol.DecodeResponse(line)
	if err != nil {
		// some servers greet with plain text
		return string(line), nil
	}
	if resp.Message != "" {
		return resp.Message, nil
	}
	return resp.Status.Description, nil
}

// Disconnect closes the connection. It is safe to call at any time and any
// number of times; close errors are logged, not returned.
func (c *Client) Disconnect() {
	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.welcome = ""
	c.connMu.Unlock()

	if conn == nil {
		return
	}
	c.closeConn(conn)
	c.observer.ObserveConnection(EventDisconnected)
	c.logger.Info("disconnected", zap.String("addr", c.addr))
}

// Execute writes req as one line and blocks for one reply line. Requests
// are never retried. Transport failures close the connection before the
// error is returned; a reply that is not valid JSON is a parse error and
// leaves the connection open.
func (c *Client) Execute(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if req == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidPayload, "request is required")
	}
	action := req.Action.String()

	c.exchangeMu.Lock()
	defer c.exchangeMu.Unlock()

	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()

	if conn == nil {
		c.observer.ObserveExchange(action, OutcomeNotConnected, 0)
		return nil, appErrors.Clone(appErrors.ErrNotConnected, "")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	line, err := req.Encode()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidPayload.Code, appErrors.ErrInvalidPayload.Status, "encode request")
	}

	start := time.Now()
	if err := c.applyDeadline(ctx, conn); err != nil {
		return nil, c.fail(conn, action, start, err)
	}

	if err := conn.WriteLine(line); err != nil {
		return nil, c.fail(conn, action, start, err)
	}

	reply, err := conn.ReadLine()
	if err != nil {
		return nil, c.fail(conn, action, start, err)
	}
	_ = conn.SetDeadline(time.Time{})

	resp, err := protocol.DecodeResponse(reply)
	if err != nil {
		c.observer.ObserveExchange(action, OutcomeParseError, time.Since(start))
		c.logger.Warn("unreadable reply", zap.String("action", action), zap.Error(err))
		return nil, err
	}

	outcome := OutcomeSuccess
	if !resp.IsSuccess() {
		outcome = OutcomeServerError
	}
	elapsed := time.Since(start)
	c.observer.ObserveExchange(action, outcome, elapsed)
	c.logger.Debug("exchange",
		zap.String("action", action),
		zap.Int("status", resp.Status.Code),
		zap.Duration("duration", elapsed),
	)
	return resp, nil
}

// fail tears down conn and maps err onto the session error taxonomy.
func (c *Client) fail(conn *transport.Conn, action string, start time.Time, err error) error {
	c.teardown(conn)

	if errors.Is(err, io.EOF) {
		c.observer.ObserveExchange(action, OutcomeLost, time.Since(start))
		c.logger.Warn("server closed the connection", zap.String("action", action))
		return appErrors.Wrap(err, appErrors.ErrConnectionLost.Code, appErrors.ErrConnectionLost.Status, appErrors.ErrConnectionLost.Message)
	}

	c.observer.ObserveExchange(action, OutcomeIOError, time.Since(start))
	c.logger.Warn("exchange failed", zap.String("action", action), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrCommunication.Code, appErrors.ErrCommunication.Status, appErrors.ErrCommunication.Message)
}

// teardown drops conn if it is still the current connection.
func (c *Client) teardown(conn *transport.Conn) {
	c.connMu.Lock()
	current := c.conn == conn
	if current {
		c.conn = nil
		c.welcome = ""
	}
	c.connMu.Unlock()

	c.closeConn(conn)
	if current {
		c.observer.ObserveConnection(EventTornDown)
	}
}

func (c *Client) closeConn(conn *transport.Conn) {
	if err := conn.Close(); err != nil && !transport.IsClosedError(err) {
		c.logger.Warn("close connection", zap.String("addr", c.addr), zap.Error(err))
	}
}

func (c *Client) applyDeadline(ctx context.Context, conn *transport.Conn) error {
	deadline, ok := ctx.Deadline()
	if !ok && c.ioTimeout > 0 {
		deadline, ok = time.Now().Add(c.ioTimeout), true
	}
	if !ok {
		return nil
	}
	return conn.SetDeadline(deadline)
}
