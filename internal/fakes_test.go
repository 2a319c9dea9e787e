package internal

import (
	"bufio"
	"context"
	"net"
	"sync"
	"testing"
	"time"
)

// fakeSession plays back scripted answers. n counts calls to each method.
type fakeSession struct {
	mu     sync.Mutex
	mode   func(n int) (Mode, error)
	time   func(n int) (float64, error)
	modeN  int
	timeN  int
	closed bool
}

func (f *fakeSession) Mode(ctx context.Context, player string) (Mode, error) {
	f.mu.Lock()
	n := f.modeN
	f.modeN++
	f.mu.Unlock()
	if f.mode == nil {
		return ModePlaying, nil
	}
	return f.mode(n)
}

func (f *fakeSession) Time(ctx context.Context, player string) (float64, error) {
	f.mu.Lock()
	n := f.timeN
	f.timeN++
	f.mu.Unlock()
	return f.time(n)
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type recordingSender struct {
	mu      sync.Mutex
	packets [][]byte
	err     error
}

func (r *recordingSender) Send(packet []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.packets = append(r.packets, append([]byte(nil), packet...))
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.packets)
}

// recordingSleep records every requested sleep without waiting.
type recordingSleep struct {
	mu     sync.Mutex
	sleeps []time.Duration
	after  func(n int)
}

func (r *recordingSleep) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.sleeps = append(r.sleeps, d)
	n := len(r.sleeps)
	r.mu.Unlock()
	if r.after != nil {
		r.after(n)
	}
	return ctx.Err()
}

// fakeLMS is a loopback control server. reply is called for every received
// line; returning ok=false drops the connection without answering.
type fakeLMS struct {
	ln    net.Listener
	reply func(line string) (string, bool)

	mu    sync.Mutex
	lines []string
}

func startFakeLMS(t *testing.T, reply func(line string) (string, bool)) *fakeLMS {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	f := &fakeLMS{ln: ln, reply: reply}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go f.handle(conn)
		}
	}()
	return f
}

func (f *fakeLMS) handle(conn net.Conn) {
	defer conn.Close()
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := sc.Text()
		f.mu.Lock()
		f.lines = append(f.lines, line)
		f.mu.Unlock()

		resp, ok := f.reply(line)
		if !ok {
			return
		}
		if _, err := conn.Write([]byte(resp + "\n")); err != nil {
			return
		}
	}
}

func (f *fakeLMS) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

func (f *fakeLMS) config() *SessionConfig {
	addr := f.ln.Addr().(*net.TCPAddr)
	return &SessionConfig{
		LMSHost:     addr.IP.String(),
		LMSPort:     addr.Port,
		Username:    "user",
		Password:    "pass",
		Player:      "00:04:20:aa:bb:cc",
		ArtNetHost:  "127.0.0.1",
		ArtNetPort:  6454,
		TargetFPS:   30,
		RetryDelay:  100 * time.Millisecond,
		DialTimeout: time.Second,
		IOTimeout:   time.Second,
	}
}

// echoLogin answers the login command the way the server does, with the
// password masked.
func echoLogin(line string) (string, bool) {
	return "login user ******", true
}

func testConfig() *SessionConfig {
	return &SessionConfig{
		LMSHost:    "127.0.0.1",
		LMSPort:    9090,
		Player:     "player",
		ArtNetHost: "127.0.0.1",
		ArtNetPort: 6454,
		TargetFPS:  20,
		RetryDelay: 3 * time.Second,
	}
}
