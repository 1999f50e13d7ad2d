package edge

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval is how often a Poller samples the local pointer.
const DefaultPollInterval = 100 * time.Millisecond

// PointerSource reports the true local pointer position, including motion
// produced by the target machine's own hardware.
type PointerSource interface {
	CursorPosition() (x, y int, err error)
}

// Poller samples a PointerSource on a fixed interval and feeds the samples
// to a Monitor. It stops after delivering one firing Signal.
type Poller struct {
	monitor  *Monitor
	source   PointerSource
	width    int
	height   int
	interval time.Duration
	onSignal func(Signal)
	log      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a stopped poller. onSignal runs on the poller goroutine.
func NewPoller(m *Monitor, src PointerSource, width, height int, interval time.Duration, onSignal func(Signal)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		monitor:  m,
		source:   src,
		width:    width,
		height:   height,
		interval: interval,
		onSignal: onSignal,
		log:      slog.Default().With("component", "edge"),
	}
}

// Start launches the polling goroutine. Calling Start on a running poller
// does nothing.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.loop(ctx, p.done)
}

// Stop cancels the polling goroutine and waits for it to exit. It is safe
// to call more than once and on a poller that was never started.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.log.Info("edge polling active", "edge", p.monitor.Policy().Edge, "interval", p.interval)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		x, y, err := p.source.CursorPosition()
		if err != nil {
			p.log.Debug("pointer sample failed", "err", err)
			continue
		}
		sig := p.monitor.Observe(x, y, p.width, p.height)
		if !sig.ShouldReturn {
			continue
		}

		p.log.Info("edge reached by local pointer", "x", x, "y", y)
		if ctx.Err() == nil && p.onSignal != nil {
			p.onSignal(sig)
		}
		return
	}
}
