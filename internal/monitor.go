package internal

import (
	"context"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// FrameCounter counts packets sent during the current observation window.
// The poll loop increments it and the monitor drains it.
type FrameCounter struct {
	n atomic.Uint64
}

func (c *FrameCounter) Inc() {
	c.n.Add(1)
}

// Swap returns the current count and resets it to zero in one step.
func (c *FrameCounter) Swap() uint64 {
	return c.n.Swap(0)
}

// Monitor reports the number of packets actually sent per second.
type Monitor struct {
	counter  *FrameCounter
	interval time.Duration
	report   func(fps uint64)
	// extra fields logged with every report, may be nil
	fields   func() log.Fields
}

// NewMonitor returns a Monitor with a one second window. report may be nil.
func NewMonitor(counter *FrameCounter, report func(fps uint64)) *Monitor {
	return &Monitor{
		counter:  counter,
		interval: time.Second,
		report:   report,
	}
}

func (m *Monitor) Run(ctx context.Context) error {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			m.tick()
		}
	}
}

func (m *Monitor) tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("frame rate report failed: %v", r)
		}
	}()

	fps := m.counter.Swap()
	entry := log.WithField("fps", fps)
	if m.fields != nil {
		entry = entry.WithFields(m.fields())
	}
	entry.Infof("FPS: %v", fps)
	if m.report != nil {
		m.report(fps)
	}
}
