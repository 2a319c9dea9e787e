package internal

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// StartBridge loads the config and runs the bridge until the process is
// told to stop.
func StartBridge(debug bool, config string) error {
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := LoadConfig(config)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	log.Debugf("config: %+v", redact(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = RunBridge(ctx, cfg)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunBridge runs the supervisor and the frame rate monitor side by side.
func RunBridge(ctx context.Context, cfg *SessionConfig) error {
	counter := &FrameCounter{}
	sender := NewUDPSender(cfg.ArtNetHost, cfg.ArtNetPort)
	sup := NewSupervisor(cfg, NewDialer(cfg), NewPoller(cfg, sender, counter))
	mon := NewMonitor(counter, nil)
	mon.fields = sup.FailureFields

	log.Infof("sending timecode for player %v to %v:%v at up to %v fps",
		cfg.Player, cfg.ArtNetHost, cfg.ArtNetPort, cfg.TargetFPS)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sup.Run(ctx) })
	g.Go(func() error { return mon.Run(ctx) })
	return g.Wait()
}

func redact(cfg *SessionConfig) SessionConfig {
	c := *cfg
	if c.Password != "" {
		c.Password = "******"
	}
	return c
}
