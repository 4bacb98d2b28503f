package authc

import (
	"context"
	"fmt"
	"net"
)

// connect opens a stream to the endpoint. remote is the resolved address for
// TCP endpoints and ignored for unix sockets. On failure no connection is
// left open.
func connect(ctx context.Context, e Endpoint, remote *net.TCPAddr) (net.Conn, error) {
	if e.Kind == EndpointUnix {
		if limit := maxUnixPathLen(); limit > 0 && len(e.Path) > limit {
			return nil, fmt.Errorf("socket path is %d bytes, limit is %d", len(e.Path), limit)
		}
		var d net.Dialer
		return d.DialContext(ctx, "unix", e.Path)
	}

	// Bind an ephemeral local port on the wildcard address before connecting.
	d := net.Dialer{LocalAddr: &net.TCPAddr{}}
	return d.DialContext(ctx, "tcp", remote.String())
}
