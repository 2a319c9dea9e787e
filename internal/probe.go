package internal

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Probe logs in once, asks for the player's mode and position and writes
// what the bridge would send.
func Probe(ctx context.Context, cfg *SessionConfig, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout+2*cfg.IOTimeout+time.Second)
	defer cancel()

	s, err := Dial(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to %v:%v: %w", cfg.LMSHost, cfg.LMSPort, err)
	}
	defer s.Close()

	mode, err := s.Mode(ctx, cfg.Player)
	if err != nil {
		return fmt.Errorf("failed to query mode: %w", err)
	}
	pos, err := s.Time(ctx, cfg.Player)
	if err != nil {
		return fmt.Errorf("failed to query time: %w", err)
	}

	fmt.Fprintf(out, "player:   %v\n", cfg.Player)
	fmt.Fprintf(out, "mode:     %v\n", mode)
	fmt.Fprintf(out, "position: %.3f\n", pos)
	fmt.Fprintf(out, "timecode: %v\n", EncodeTimecode(pos))
	return nil
}
