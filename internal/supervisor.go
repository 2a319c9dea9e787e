package internal

import (
	"context"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// Supervisor owns the session lifecycle. Any failure while connecting or
// polling closes the session, waits RetryDelay and starts over. It never
// gives up; Run only returns once ctx is done.
type Supervisor struct {
	dial       Dialer
	poller     *Poller
	retryDelay time.Duration
	sleep      sleepFunc

	failures [KindUnknown + 1]atomic.Uint64
}

func NewSupervisor(cfg *SessionConfig, dial Dialer, poller *Poller) *Supervisor {
	return &Supervisor{
		dial:       dial,
		poller:     poller,
		retryDelay: cfg.RetryDelay,
		sleep:      sleepCtx,
	}
}

func (s *Supervisor) Run(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		err := s.runSession(ctx)
		if ctx.Err() != nil {
			log.Info("shutting down control session")
			return ctx.Err()
		}

		kind := KindOf(err)
		s.failures[kind].Add(1)
		log.WithFields(log.Fields{
			"kind":     kind,
			"attempt":  attempt,
			"retry_in": s.retryDelay,
		}).Errorf("an error occurred: %v. retrying in %v", err, s.retryDelay)

		if err := s.sleep(ctx, s.retryDelay); err != nil {
			log.Info("shutting down control session")
			return err
		}
	}
}

// Failures returns how many sessions ended with an error of the given kind.
func (s *Supervisor) Failures(kind ErrorKind) uint64 {
	if kind < 0 || kind > KindUnknown {
		kind = KindUnknown
	}
	return s.failures[kind].Load()
}

// FailureFields returns the failure counts by kind as log fields.
func (s *Supervisor) FailureFields() log.Fields {
	fields := log.Fields{}
	for kind := KindConnection; kind <= KindUnknown; kind++ {
		fields["failures_"+kind.String()] = s.failures[kind].Load()
	}
	return fields
}

func (s *Supervisor) runSession(ctx context.Context) error {
	log.Debug("connecting to control server")
	sess, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	// unblock any pending read when shutting down
	stop := context.AfterFunc(ctx, func() { sess.Close() })
	defer stop()

	log.Info("logged in to control server, polling player")
	return s.poller.Run(ctx, sess)
}
