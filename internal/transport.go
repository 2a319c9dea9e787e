package internal

import (
	"fmt"
	"net"
	"strconv"
)

// Sender delivers one timecode packet to the lighting network.
type Sender interface {
	Send(packet []byte) error
}

// UDPSender sends each packet as a single datagram from a fresh socket. There
// is no acknowledgement and no retry; the next packet carries an absolute
// timecode anyway.
type UDPSender struct {
	addr string
}

func NewUDPSender(host string, port int) *UDPSender {
	return &UDPSender{addr: net.JoinHostPort(host, strconv.Itoa(port))}
}

func (u *UDPSender) Send(packet []byte) error {
	conn, err := net.Dial("udp", u.addr)
	if err != nil {
		return fmt.Errorf("dial %v: %w", u.addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(packet); err != nil {
		return fmt.Errorf("write to %v: %w", u.addr, err)
	}
	return nil
}
