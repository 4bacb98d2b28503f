// Package config holds the endpoint and timeout settings of the helper and
// the loaders for its configuration files.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nupi-ai/openvpn-authc/internal/constants"
)

// Config is assembled once at startup and passed by value afterwards.
type Config struct {
	// Hostname is a DNS name, an IP address, or a unix socket path when it
	// starts with "/".
	Hostname string
	// Port is ignored for unix sockets.
	Port    int
	Timeout time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Hostname: constants.DefaultHostname,
		Port:     constants.DefaultPort,
		Timeout:  constants.DefaultAuthTimeout,
	}
}

// IsUnixSocket reports whether Hostname names a unix domain socket.
func (c Config) IsUnixSocket() bool {
	return strings.HasPrefix(c.Hostname, "/")
}

// Validate rejects settings that cannot produce a working exchange.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Hostname) == "" {
		return errors.New("config: hostname is empty")
	}
	if !c.IsUnixSocket() && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.Timeout < constants.MinAuthTimeout {
		return fmt.Errorf("config: timeout must be at least %s, got %s", constants.MinAuthTimeout, c.Timeout)
	}
	return nil
}
