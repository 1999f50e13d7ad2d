// Package session keeps a persistent link to the source machine, feeding
// received events to the dispatcher and sending handbacks upstream.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"mouseshare/internal/edge"
	"mouseshare/internal/input"
	"mouseshare/internal/protocol"
)

const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 30 * time.Second
	DefaultBackoff        = 2 * time.Second
)

// Dialer opens the transport. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Dispatcher consumes events for the connected session.
type Dispatcher interface {
	Apply(ev protocol.Event) edge.Signal
	ReleaseAll()
	Geometry() input.Geometry
}

// Options configures a Client. Zero durations take the package defaults.
type Options struct {
	Addr           string
	ConnectTimeout time.Duration
	// ReadTimeout bounds every frame read; negative disables it.
	ReadTimeout time.Duration
	Backoff     time.Duration

	// Pointer enables the background edge poller when non-nil.
	Pointer      edge.PointerSource
	PollInterval time.Duration

	Dialer Dialer
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	if o.Backoff <= 0 {
		o.Backoff = DefaultBackoff
	}
	if o.PollInterval <= 0 {
		o.PollInterval = edge.DefaultPollInterval
	}
	if o.Dialer == nil {
		o.Dialer = &net.Dialer{}
	}
	return o
}

// Status is a snapshot of the client for observers.
type Status struct {
	State        State     `json:"state"`
	Target       string    `json:"target"`
	SessionID    string    `json:"sessionId,omitempty"`
	Since        time.Time `json:"since"`
	LastError    string    `json:"lastError,omitempty"`
	Connects     uint64    `json:"connects"`
	Frames       uint64    `json:"frames"`
	DecodeErrors uint64    `json:"decodeErrors"`
	Handbacks    uint64    `json:"handbacks"`
}

// Client runs the Connecting/Connected/Disconnected cycle until its context
// is cancelled. The read loop is the only reader of the connection; outbound
// frames from the read loop and the poller share one FrameWriter.
type Client struct {
	opts       Options
	dispatcher Dispatcher
	monitor    *edge.Monitor
	log        *slog.Logger
	warn       *rate.Limiter

	mu        sync.Mutex
	state     State
	sessionID string
	since     time.Time
	lastErr   string
	observers []func(Status)

	connects     atomic.Uint64
	frames       atomic.Uint64
	decodeErrors atomic.Uint64
	handbacks    atomic.Uint64
}

// NewClient creates a client. monitor is rearmed at the start of every
// connection and may be nil when no handback is wanted.
func NewClient(opts Options, d Dispatcher, monitor *edge.Monitor) *Client {
	return &Client{
		opts:       opts.withDefaults(),
		dispatcher: d,
		monitor:    monitor,
		log:        slog.Default().With("component", "session"),
		warn:       rate.NewLimiter(rate.Every(time.Second), 5),
		state:      StateDisconnected,
		since:      time.Now(),
	}
}

// OnStateChange registers an observer called after every transition. It
// must not block.
func (c *Client) OnStateChange(fn func(Status)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// Status returns the current snapshot.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Client) statusLocked() Status {
	return Status{
		State:        c.state,
		Target:       c.opts.Addr,
		SessionID:    c.sessionID,
		Since:        c.since,
		LastError:    c.lastErr,
		Connects:     c.connects.Load(),
		Frames:       c.frames.Load(),
		DecodeErrors: c.decodeErrors.Load(),
		Handbacks:    c.handbacks.Load(),
	}
}

func (c *Client) fire(t Trigger, sessionID string, cause error) {
	c.mu.Lock()
	next, err := Transition(c.state, t)
	if err != nil {
		c.mu.Unlock()
		c.log.Error("state machine", "err", err)
		return
	}
	c.state = next
	c.since = time.Now()
	if sessionID != "" {
		c.sessionID = sessionID
	}
	if cause != nil {
		c.lastErr = cause.Error()
	} else if next == StateConnected {
		c.lastErr = ""
	}
	st := c.statusLocked()
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(st)
	}
}

// Run connects and reconnects forever. It returns the context error once
// ctx is done.
func (c *Client) Run(ctx context.Context) error {
	c.fire(BackoffElapsed, "", nil)
	for {
		err := c.runSession(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logDisconnect(err)

		timer := time.NewTimer(c.opts.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		c.log.Info("reconnecting", "addr", c.opts.Addr)
		c.fire(BackoffElapsed, "", nil)
	}
}

// runSession performs one Connecting phase and, if the dial succeeds, one
// Connected phase. It leaves the client Disconnected.
func (c *Client) runSession(ctx context.Context) error {
	id := uuid.NewString()
	log := c.log.With("session", id)
	log.Info("connecting", "addr", c.opts.Addr, "timeout", c.opts.ConnectTimeout)

	dialCtx, cancelDial := context.WithTimeout(ctx, c.opts.ConnectTimeout)
	conn, err := c.opts.Dialer.DialContext(dialCtx, "tcp", c.opts.Addr)
	cancelDial()
	if err != nil {
		err = fmt.Errorf("dial %s: %w", c.opts.Addr, err)
		c.dispatcher.ReleaseAll()
		c.fire(DialFailed, "", err)
		return err
	}

	if c.monitor != nil {
		c.monitor.Rearm()
	}
	c.connects.Add(1)
	c.fire(Dialed, id, nil)
	log.Info("connected", "remote", conn.RemoteAddr())

	sessCtx, cancel := context.WithCancel(ctx)
	stopClose := context.AfterFunc(sessCtx, func() { conn.Close() })

	writer := protocol.NewFrameWriter(conn)
	handbackErr := make(chan error, 1)
	var poller *edge.Poller
	if c.opts.Pointer != nil && c.monitor != nil {
		g := c.dispatcher.Geometry()
		poller = edge.NewPoller(c.monitor, c.opts.Pointer, g.Width, g.Height, c.opts.PollInterval,
			func(sig edge.Signal) {
				if err := c.sendHandback(conn, writer, sig); err != nil {
					log.Warn("handback from poller failed", "err", err)
					handbackErr <- err
					cancel()
				}
			})
		poller.Start(sessCtx)
	}

	err = c.readLoop(log, conn, writer)

	cancel()
	stopClose()
	if poller != nil {
		poller.Stop()
	}
	select {
	case err = <-handbackErr:
	default:
	}
	c.dispatcher.ReleaseAll()
	conn.Close()

	c.fire(LinkLost, "", err)
	return err
}

func (c *Client) readLoop(log *slog.Logger, conn net.Conn, writer *protocol.FrameWriter) error {
	for {
		if c.opts.ReadTimeout > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(c.opts.ReadTimeout)); err != nil {
				return fmt.Errorf("set read deadline: %w", err)
			}
		}

		raw, err := protocol.ReadFrame(conn)
		if err == nil {
			var ev protocol.Event
			ev, err = protocol.ParseEvent(raw)
			if err == nil {
				c.frames.Add(1)
				if sig := c.dispatcher.Apply(ev); sig.ShouldReturn {
					if err := c.sendHandback(conn, writer, sig); err != nil {
						return err
					}
				}
				continue
			}
		}

		if protocol.IsDecodeError(err) {
			c.decodeErrors.Add(1)
			if c.warn.Allow() {
				log.Warn("dropping undecodable frame", "err", err)
			}
			continue
		}
		return err
	}
}

// sendHandback writes a returnControl frame, bounded by ConnectTimeout.
func (c *Client) sendHandback(conn net.Conn, writer *protocol.FrameWriter, sig edge.Signal) error {
	ev := sig.Event()
	if err := conn.SetWriteDeadline(time.Now().Add(c.opts.ConnectTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := writer.WriteFrame(ev); err != nil {
		return fmt.Errorf("send handback: %w", err)
	}
	c.handbacks.Add(1)
	c.log.Info("handed control back", "edge", ev.Edge, "normalizedY", ev.NormalizedY, "normalizedX", ev.NormalizedX)
	return nil
}

func (c *Client) logDisconnect(err error) {
	var netErr net.Error
	switch {
	case err == nil:
		c.log.Info("disconnected", "backoff", c.opts.Backoff)
	case errors.Is(err, protocol.ErrProtocolViolation):
		c.log.Warn("protocol violation, dropping connection", "err", err, "backoff", c.opts.Backoff)
	case errors.Is(err, protocol.ErrConnectionClosed):
		c.log.Info("connection closed by peer", "backoff", c.opts.Backoff)
	case errors.As(err, &netErr) && netErr.Timeout():
		c.log.Warn("link timed out", "err", err, "backoff", c.opts.Backoff)
	default:
		c.log.Warn("disconnected", "err", err, "backoff", c.opts.Backoff)
	}
}
