package internal

import (
	"context"
	"errors"
	"net"

	log "github.com/sirupsen/logrus"
)

// Listen receives ArtTimeCode packets on addr and hands each decoded
// timecode to handle. It returns when ctx is done.
func Listen(ctx context.Context, addr string, handle func(Timecode)) error {
	udpServer, err := net.ListenPacket("udp", addr)
	if err != nil {
		return err
	}
	return serve(ctx, udpServer, handle)
}

func serve(ctx context.Context, udpServer net.PacketConn, handle func(Timecode)) error {
	defer udpServer.Close()
	stop := context.AfterFunc(ctx, func() { udpServer.Close() })
	defer stop()

	log.Infof("listening on %v for art-net timecode packets", udpServer.LocalAddr())

	prev := Timecode{}
	first := true
	buf := make([]byte, 1024)
	for {
		n, from, err := udpServer.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return ctx.Err()
			}
			log.Errorf("error reading udp packet: %v", err)
			continue
		}

		tc, err := DecodeTimecodePacket(buf[:n])
		if err != nil {
			log.Debugf("ignoring packet from %v: %v", from, err)
			continue
		}

		if first || tc != prev {
			log.Debugf("received timecode %v from %v", tc, from)
		}
		prev, first = tc, false

		if handle != nil {
			handle(tc)
		}
	}
}
