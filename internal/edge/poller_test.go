package edge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// scriptedPointer replays a fixed list of positions, then repeats the last.
type scriptedPointer struct {
	mu    sync.Mutex
	steps [][2]int
	calls int
}

func (s *scriptedPointer) CursorPosition() (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if len(s.steps) == 0 {
		return 0, 0, errors.New("no pointer")
	}
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	return s.steps[i][0], s.steps[i][1], nil
}

func TestPollerFiresWhenPointerReachesEdge(t *testing.T) {
	src := &scriptedPointer{steps: [][2]int{{900, 500}, {400, 500}, {3, 270}}}
	m := NewMonitor(DefaultPolicy())

	signals := make(chan Signal, 4)
	p := NewPoller(m, src, 1920, 1080, time.Millisecond, func(s Signal) { signals <- s })
	p.Start(context.Background())
	defer p.Stop()

	select {
	case sig := <-signals:
		if sig.NormalizedY != 0.25 {
			t.Errorf("NormalizedY = %v, want 0.25", sig.NormalizedY)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("poller never fired")
	}

	select {
	case sig := <-signals:
		t.Fatalf("poller fired twice: %+v", sig)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	src := &scriptedPointer{steps: [][2]int{{900, 500}}}
	p := NewPoller(NewMonitor(DefaultPolicy()), src, 1920, 1080, time.Millisecond, nil)

	p.Stop()
	p.Start(context.Background())
	p.Start(context.Background())
	p.Stop()
	p.Stop()
}

func TestPollerDoesNotFireAfterMonitorIdle(t *testing.T) {
	src := &scriptedPointer{steps: [][2]int{{0, 0}}}
	m := NewMonitor(DefaultPolicy())
	if !m.Observe(0, 0, 1920, 1080).ShouldReturn {
		t.Fatal("synchronous path should fire first")
	}

	fired := make(chan struct{}, 1)
	p := NewPoller(m, src, 1920, 1080, time.Millisecond, func(Signal) { fired <- struct{}{} })
	p.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	select {
	case <-fired:
		t.Fatal("poller fired while monitor idle")
	default:
	}
}

func TestPollerSurvivesSampleErrors(t *testing.T) {
	src := &scriptedPointer{}
	p := NewPoller(NewMonitor(DefaultPolicy()), src, 1920, 1080, time.Millisecond, nil)
	p.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	p.Stop()

	src.mu.Lock()
	defer src.mu.Unlock()
	if src.calls == 0 {
		t.Error("poller never sampled")
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	src := &scriptedPointer{steps: [][2]int{{900, 500}}}
	p := NewPoller(NewMonitor(DefaultPolicy()), src, 1920, 1080, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked after context cancel")
	}
}
