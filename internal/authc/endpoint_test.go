package authc

import (
	"context"
	"errors"
	"net"
	"testing"
)

type fakeResolver struct {
	addrs []net.IPAddr
	err   error
	calls []string
}

func (r *fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	r.calls = append(r.calls, host)
	return r.addrs, r.err
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		hostname string
		kind     EndpointKind
		str      string
	}{
		{"/var/run/authd.sock", EndpointUnix, "/var/run/authd.sock"},
		{"/definitely/not/there", EndpointUnix, "/definitely/not/there"},
		{"/", EndpointUnix, "/"},
		{"127.0.0.1", EndpointTCP, "127.0.0.1:1559"},
		{"auth.example.net", EndpointTCP, "auth.example.net:1559"},
		{"relative/authd.sock", EndpointTCP, "relative/authd.sock:1559"},
		{"::1", EndpointTCP, "[::1]:1559"},
	}
	for _, tc := range tests {
		e := ParseEndpoint(tc.hostname, 1559)
		if e.Kind != tc.kind {
			t.Errorf("ParseEndpoint(%q).Kind = %v, want %v", tc.hostname, e.Kind, tc.kind)
		}
		if e.String() != tc.str {
			t.Errorf("ParseEndpoint(%q).String() = %q, want %q", tc.hostname, e.String(), tc.str)
		}
	}
}

func TestResolveTCPPrefersIPv4(t *testing.T) {
	r := &fakeResolver{addrs: []net.IPAddr{
		{IP: net.ParseIP("2001:db8::10")},
		{IP: net.ParseIP("192.0.2.10")},
		{IP: net.ParseIP("192.0.2.11")},
	}}
	addr, err := resolveTCP(context.Background(), r, ParseEndpoint("auth.example.net", 1559))
	if err != nil {
		t.Fatalf("resolveTCP: %v", err)
	}
	if got := addr.String(); got != "192.0.2.10:1559" {
		t.Fatalf("resolved %s, want 192.0.2.10:1559", got)
	}
}

func TestResolveTCPFallsBackToFirstAddress(t *testing.T) {
	r := &fakeResolver{addrs: []net.IPAddr{{IP: net.ParseIP("2001:db8::10")}}}
	addr, err := resolveTCP(context.Background(), r, ParseEndpoint("auth.example.net", 7000))
	if err != nil {
		t.Fatalf("resolveTCP: %v", err)
	}
	if got := addr.String(); got != "[2001:db8::10]:7000" {
		t.Fatalf("resolved %s", got)
	}
}

func TestResolveTCPNoAddresses(t *testing.T) {
	_, err := resolveTCP(context.Background(), &fakeResolver{}, ParseEndpoint("empty.example.net", 1559))
	if !errors.Is(err, errNoAddresses) {
		t.Fatalf("error = %v, want errNoAddresses", err)
	}
}

func TestClientNeverResolvesSocketPath(t *testing.T) {
	r := &fakeResolver{err: errors.New("must not be called")}
	c := New(Options{Hostname: "/definitely/not/there.sock", Resolver: r, Logger: discardLogger()})

	_, err := c.Authenticate(context.Background(), Credential{Username: "alice"})
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("error = %v, want ErrConnection", err)
	}
	if len(r.calls) != 0 {
		t.Fatalf("resolver called for a socket path: %v", r.calls)
	}
}

func TestClientAlwaysResolvesHostnames(t *testing.T) {
	for _, host := range []string{"127.0.0.1", "auth.example.net", "not a host"} {
		r := &fakeResolver{err: errors.New("no such host")}
		c := New(Options{Hostname: host, Resolver: r, Logger: discardLogger()})

		_, err := c.Authenticate(context.Background(), Credential{Username: "alice"})
		if !errors.Is(err, ErrResolution) {
			t.Fatalf("%s: error = %v, want ErrResolution", host, err)
		}
		if len(r.calls) != 1 || r.calls[0] != host {
			t.Fatalf("%s: resolver calls = %v", host, r.calls)
		}
	}
}
