package internal

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// idlePoll is how long to wait before asking again while the player is not
// playing.
const idlePoll = 10 * time.Millisecond

type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poller drives one session: it asks for the mode and position at most
// TargetFPS times a second and sends a timecode packet whenever the position
// moved since the last packet.
type Poller struct {
	player   string
	interval time.Duration
	idle     time.Duration
	sender   Sender
	counter  *FrameCounter
	sleep    sleepFunc

	lastSent float64
	haveLast bool
}

func NewPoller(cfg *SessionConfig, sender Sender, counter *FrameCounter) *Poller {
	return &Poller{
		player:   cfg.Player,
		interval: time.Second / time.Duration(cfg.TargetFPS),
		idle:     idlePoll,
		sender:   sender,
		counter:  counter,
		sleep:    sleepCtx,
	}
}

// Run polls until the session fails or ctx is done. Session errors are
// returned as is.
func (p *Poller) Run(ctx context.Context, s Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()

		mode, err := s.Mode(ctx, p.player)
		if err != nil {
			return err
		}
		if mode != ModePlaying {
			if err := p.sleep(ctx, p.idle); err != nil {
				return err
			}
			continue
		}

		pos, err := s.Time(ctx, p.player)
		if err != nil {
			return err
		}
		p.emit(PlaybackState{Mode: mode, Position: pos, ValidAsOf: time.Now()})

		if err := p.sleep(ctx, p.interval-time.Since(start)); err != nil {
			return err
		}
	}
}

func (p *Poller) emit(state PlaybackState) {
	if p.haveLast && state.Position == p.lastSent {
		return
	}

	tc := EncodeTimecode(state.Position)
	if err := p.sender.Send(tc.Packet()); err != nil {
		log.Warnf("failed to send timecode %v: %v", tc, err)
		return
	}
	log.Debugf("sent timecode %v for position %v", tc, state.Position)

	p.lastSent = state.Position
	p.haveLast = true
	p.counter.Inc()
}
