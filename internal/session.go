package internal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Session is an authenticated control connection that can report a
// player's mode and position.
type Session interface {
	Mode(ctx context.Context, player string) (Mode, error)
	Time(ctx context.Context, player string) (float64, error)
	Close() error
}

// Dialer opens and logs in a new Session.
type Dialer func(ctx context.Context) (Session, error)

// lmsSession speaks the line based CLI of the media server over one TCP
// connection. Each command is one line out and one line back.
type lmsSession struct {
	conn      net.Conn
	r         *bufio.Reader
	ioTimeout time.Duration
}

// NewDialer returns a Dialer that connects to the configured control server
// and performs the login exchange.
func NewDialer(cfg *SessionConfig) Dialer {
	return func(ctx context.Context) (Session, error) {
		return Dial(ctx, cfg)
	}
}

// Dial connects and logs in. The login reply is read and thrown away; a bad
// login shows up as a failure of the first real command instead.
func Dial(ctx context.Context, cfg *SessionConfig) (Session, error) {
	addr := net.JoinHostPort(cfg.LMSHost, strconv.Itoa(cfg.LMSPort))

	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, connectionError("connect", err)
	}

	s := &lmsSession{
		conn:      conn,
		r:         bufio.NewReader(conn),
		ioTimeout: cfg.IOTimeout,
	}

	log.Debugf("connected to control server at %v", addr)

	if _, err := s.command(ctx, "login", fmt.Sprintf("login %v %v", cfg.Username, cfg.Password)); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

func (s *lmsSession) Mode(ctx context.Context, player string) (Mode, error) {
	tok, err := s.query(ctx, "mode", player)
	if err != nil {
		return ModeOther, err
	}
	if tok == "play" {
		return ModePlaying, nil
	}
	return ModeOther, nil
}

func (s *lmsSession) Time(ctx context.Context, player string) (float64, error) {
	tok, err := s.query(ctx, "time", player)
	if err != nil {
		return 0, err
	}
	pos, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, valueError("time", err)
	}
	if math.IsNaN(pos) || math.IsInf(pos, 0) || pos < 0 {
		return 0, valueError("time", fmt.Errorf("position out of range: %v", tok))
	}
	return pos, nil
}

func (s *lmsSession) Close() error {
	return s.conn.Close()
}

// query sends "<player> <name> ?" and returns the last token of the reply.
func (s *lmsSession) query(ctx context.Context, name, player string) (string, error) {
	resp, err := s.command(ctx, name, fmt.Sprintf("%v %v ?", EscapePlayer(player), name))
	if err != nil {
		return "", err
	}

	fields := strings.Fields(resp)
	if len(fields) == 0 {
		return "", protocolError(name, errors.New("empty response"))
	}
	tok := fields[len(fields)-1]
	if unescaped, err := url.PathUnescape(tok); err == nil {
		tok = unescaped
	}

	log.Debugf("%v response: %v", name, tok)
	return tok, nil
}

func (s *lmsSession) command(ctx context.Context, op, line string) (string, error) {
	if err := s.conn.SetDeadline(s.deadline(ctx)); err != nil {
		return "", connectionError(op, err)
	}

	if _, err := io.WriteString(s.conn, line+"\n"); err != nil {
		return "", connectionError(op, err)
	}

	resp, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if resp == "" {
				return "", protocolError(op, errors.New("no response from server"))
			}
			return resp, nil
		}
		return "", connectionError(op, err)
	}
	return resp, nil
}

func (s *lmsSession) deadline(ctx context.Context) time.Time {
	var dl time.Time
	if s.ioTimeout > 0 {
		dl = time.Now().Add(s.ioTimeout)
	}
	if cdl, ok := ctx.Deadline(); ok && (dl.IsZero() || cdl.Before(dl)) {
		dl = cdl
	}
	return dl
}

// EscapePlayer percent-encodes a player id for use as a CLI token, so a MAC
// address like 00:04:20:aa:bb:cc becomes 00%3A04%3A20%3Aaa%3Abb%3Acc.
// Slashes are left as is.
func EscapePlayer(player string) string {
	return playerEscaper.Replace(url.QueryEscape(player))
}

var playerEscaper = strings.NewReplacer("+", "%20", "%2F", "/")
