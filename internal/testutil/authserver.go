// Package testutil provides a fake authentication server speaking the
// line-based verify protocol over TCP or a unix socket.
package testutil

import (
	"bufio"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// Handler decides what the fake server does after it has read a request. A nil
// Handler never answers and keeps the connection open until the server closes.
type Handler func(conn net.Conn, request string)

// Reply answers every request with line verbatim.
func Reply(line string) Handler {
	return func(conn net.Conn, _ string) {
		_, _ = conn.Write([]byte(line))
	}
}

// CloseWithoutReply hangs up right after reading the request.
func CloseWithoutReply() Handler {
	return func(net.Conn, string) {}
}

// AuthServer is a fake authentication server bound to a test.
type AuthServer struct {
	Network string
	Addr    string

	ln      net.Listener
	handler Handler
	done    chan struct{}

	mu       sync.Mutex
	closed   bool
	requests []string
	conns    []net.Conn
	wg       sync.WaitGroup
}

// StartTCP starts a server on an ephemeral loopback port. The test is skipped
// when the sandbox does not permit listening.
func StartTCP(t *testing.T, handler Handler) *AuthServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("network not permitted: %v", err)
	}
	return serve(t, ln, handler)
}

// StartUnix starts a server on a socket inside a temporary directory.
func StartUnix(t *testing.T, handler Handler) *AuthServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authd.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets not permitted: %v", err)
	}
	return serve(t, ln, handler)
}

func serve(t *testing.T, ln net.Listener, handler Handler) *AuthServer {
	s := &AuthServer{
		Network: ln.Addr().Network(),
		Addr:    ln.Addr().String(),
		ln:      ln,
		handler: handler,
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.acceptLoop()
	t.Cleanup(s.Close)
	return s
}

// Port returns the TCP port the server listens on.
func (s *AuthServer) Port() int {
	if addr, ok := s.ln.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Requests returns every request block received so far.
func (s *AuthServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// Close stops the listener and drops open connections.
func (s *AuthServer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	conns := s.conns
	s.mu.Unlock()

	_ = s.ln.Close()
	for _, c := range conns {
		_ = c.Close()
	}
	s.wg.Wait()
}

func (s *AuthServer) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.conns = append(s.conns, conn)
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conn.Close()
			request := readRequest(conn)
			s.mu.Lock()
			s.requests = append(s.requests, request)
			s.mu.Unlock()
			if s.handler == nil {
				<-s.done
				return
			}
			s.handler(conn, request)
		}()
	}
}

// readRequest reads lines up to and including the terminating blank line.
func readRequest(conn net.Conn) string {
	var b strings.Builder
	br := bufio.NewReader(conn)
	for {
		line, err := br.ReadString('\n')
		b.WriteString(line)
		if err != nil || line == "\n" {
			return b.String()
		}
	}
}
