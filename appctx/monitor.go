package appctx

import (
	"context"
	"sync"
	"time"

	"voxkey/control"
	"voxkey/log"
)

const DefaultInterval = 2 * time.Second

// Monitor polls a Focus and tells observers when the classified context
// changes. Detection failures count as Default.
type Monitor struct {
	focus    Focus
	interval time.Duration

	mu      sync.Mutex
	current *control.Topic[Context]
	queue   control.Queue
	lastErr string
}

func NewMonitor(p Focus, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		focus:    p,
		interval: interval,
		current:  control.NewTopic("context", Default),
	}
}

func (m *Monitor) Context() Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Value()
}

// Register adds o and calls it with the current context before returning.
func (m *Monitor) Register(o *control.Observer[Context]) {
	m.mu.Lock()
	deliver, added := m.current.Add(o)
	m.mu.Unlock()
	if added {
		deliver()
	}
}

func (m *Monitor) Unregister(o *control.Observer[Context]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.Remove(o)
}

// Poll runs one detection and returns the resulting context.
func (m *Monitor) Poll(ctx context.Context) Context {
	label, err := m.focus.ForegroundApp(ctx)
	next := Default
	if err == nil {
		next = Classify(label)
	}

	m.mu.Lock()
	m.noteErr(err)
	if deliver, changed := m.current.Set(next); changed {
		log.Infof("context: %s (%q)", next, label)
		m.queue.Push(deliver)
	}
	m.mu.Unlock()
	m.queue.Drain(&m.mu)
	return next
}

// noteErr logs a lookup error only when it differs from the previous one.
func (m *Monitor) noteErr(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == m.lastErr {
		return
	}
	m.lastErr = msg
	if err != nil {
		log.Warnf("context lookup: %v", err)
	}
}

// Run polls until ctx is done, then drops every observer.
func (m *Monitor) Run(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.current.Clear()
		m.mu.Unlock()
	}()

	m.Poll(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Poll(ctx)
		}
	}
}
