package authc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// EndpointKind selects the transport used to reach the authentication server.
type EndpointKind int

const (
	EndpointTCP EndpointKind = iota
	EndpointUnix
)

func (k EndpointKind) String() string {
	if k == EndpointUnix {
		return "unix"
	}
	return "tcp"
}

// Endpoint is the authentication server target derived from the configured
// hostname. Exactly one of Path or Host/Port is meaningful, depending on Kind.
type Endpoint struct {
	Kind EndpointKind
	Path string
	Host string
	Port int
}

// ParseEndpoint maps a configured hostname to an Endpoint. A leading "/" selects
// a unix domain socket at that exact path; anything else is a TCP host that is
// resolved at connect time. The path is not checked for existence.
func ParseEndpoint(hostname string, port int) Endpoint {
	if strings.HasPrefix(hostname, "/") {
		return Endpoint{Kind: EndpointUnix, Path: hostname}
	}
	return Endpoint{Kind: EndpointTCP, Host: hostname, Port: port}
}

func (e Endpoint) String() string {
	if e.Kind == EndpointUnix {
		return e.Path
	}
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Resolver looks up host addresses. *net.Resolver satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

var errNoAddresses = errors.New("no addresses returned")

// resolveTCP resolves a TCP endpoint to a single remote address. The first IPv4
// address wins; without one, the first address of any family is used.
func resolveTCP(ctx context.Context, r Resolver, e Endpoint) (*net.TCPAddr, error) {
	addrs, err := r.LookupIPAddr(ctx, e.Host)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%s: %w", e.Host, errNoAddresses)
	}
	pick := addrs[0]
	for _, a := range addrs {
		if a.IP.To4() != nil {
			pick = a
			break
		}
	}
	return &net.TCPAddr{IP: pick.IP, Port: e.Port, Zone: pick.Zone}, nil
}
