package authc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/nupi-ai/openvpn-authc/internal/constants"
)

// State is a step of a single authentication exchange.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateConnecting
	StateSending
	StateAwaitingResponse
	StateDone
	StateAborted
)

var stateNames = [...]string{
	StateIdle:             "idle",
	StateResolving:        "resolving",
	StateConnecting:       "connecting",
	StateSending:          "sending",
	StateAwaitingResponse: "awaiting-response",
	StateDone:             "done",
	StateAborted:          "aborted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Options configures a Client.
type Options struct {
	// Hostname is either a DNS name / IP address or, when it starts with "/",
	// the path of a unix domain socket. Defaults to 127.0.0.1.
	Hostname string
	// Port is used for TCP endpoints only. Defaults to 1559.
	Port int
	// Timeout bounds resolution, connect, send and receive together.
	// Non-positive means no deadline.
	Timeout time.Duration
	// Logger receives one line per significant event. Defaults to log.Default().
	Logger *log.Logger
	// Resolver defaults to net.DefaultResolver.
	Resolver Resolver
	// Trace, when set, is called with every state the exchange enters.
	Trace func(State)
}

// Client relays credentials to one authentication server.
type Client struct {
	endpoint Endpoint
	timeout  time.Duration
	logger   *log.Logger
	resolver Resolver
	trace    func(State)
	dial     func(ctx context.Context, e Endpoint, remote *net.TCPAddr) (net.Conn, error)
}

// New returns a Client for opts, filling unset fields with the built-in defaults.
func New(opts Options) *Client {
	hostname := opts.Hostname
	if hostname == "" {
		hostname = constants.DefaultHostname
	}
	port := opts.Port
	if port <= 0 {
		port = constants.DefaultPort
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	var resolver Resolver = net.DefaultResolver
	if opts.Resolver != nil {
		resolver = opts.Resolver
	}
	return &Client{
		endpoint: ParseEndpoint(hostname, port),
		timeout:  opts.Timeout,
		logger:   logger,
		resolver: resolver,
		trace:    opts.Trace,
		dial:     connect,
	}
}

// Authenticate sends cred to the server and waits for its one-line verdict.
// It returns nil only when the server accepted the credential. On rejection
// the parsed Reply is returned together with an ErrRejected error. When the
// timeout expires first the error matches ErrTimeout.
func (c *Client) Authenticate(ctx context.Context, cred Credential) (Reply, error) {
	ctx, cancel := armDeadline(ctx, c.timeout)
	defer cancel()

	reply, err := c.exchange(ctx, cred.Bounded())
	if errors.Is(err, ErrTimeout) {
		c.enter(StateAborted)
		c.logger.Printf("Authentication timeout (%d seconds) exceeded.", int(c.timeout/time.Second))
		return Reply{}, err
	}
	c.enter(StateDone)
	return reply, err
}

func (c *Client) exchange(ctx context.Context, cred Credential) (Reply, error) {
	e := c.endpoint

	var remote *net.TCPAddr
	if e.Kind == EndpointUnix {
		c.logger.Printf("Connecting to authentication server using UNIX domain socket %s.", e.Path)
	} else {
		c.logger.Printf("Connecting to authentication server %s using TCP socket.", e)
		c.enter(StateResolving)
		addr, err := resolveTCP(ctx, c.resolver, e)
		if err != nil {
			return Reply{}, c.fail(ctx, ErrResolution, err, "Unable to resolve %s: %v.", e.Host, err)
		}
		remote = addr
	}

	c.enter(StateConnecting)
	conn, err := c.dial(ctx, e, remote)
	if err != nil {
		return Reply{}, c.fail(ctx, ErrConnection, err, "Unable to connect to %s: %v.", e, err)
	}
	defer conn.Close()
	stop := bindConn(ctx, conn)
	defer stop()

	c.enter(StateSending)
	if err := writeRequest(conn, cred); err != nil {
		return Reply{}, c.fail(ctx, ErrSend, err, "Unable to send authentication request to %s: %v.", e, err)
	}

	c.enter(StateAwaitingResponse)
	raw, err := readLine(conn)
	if err != nil {
		return Reply{}, c.fail(ctx, ErrNoResponse, err, "No response read from authentication server: %v", err)
	}

	reply, err := ParseReply(raw)
	if err != nil {
		c.logger.Printf("Invalid response from server: %q", raw)
		return Reply{}, &Error{Kind: ErrMalformedResponse, Endpoint: e.String(), Reply: raw}
	}
	if !reply.Accepted() {
		c.logger.Printf("Authentication FAILED for user '%s': %s", cred.Username, reply.Line)
		return reply, &Error{Kind: ErrRejected, Endpoint: e.String(), Reply: reply.Line}
	}
	c.logger.Printf("Authentication SUCCEEDED for user '%s'", cred.Username)
	return reply, nil
}

// fail logs and wraps an I/O error. Errors caused by the expired deadline
// become ErrTimeout and are logged once by Authenticate.
func (c *Client) fail(ctx context.Context, kind, err error, format string, args ...any) error {
	if expired(ctx) {
		return &Error{Kind: ErrTimeout, Endpoint: c.endpoint.String(), Err: err}
	}
	c.logger.Printf(format, args...)
	return &Error{Kind: kind, Endpoint: c.endpoint.String(), Err: err}
}

func (c *Client) enter(s State) {
	if c.trace != nil {
		c.trace(s)
	}
}
