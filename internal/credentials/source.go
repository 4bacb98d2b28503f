// Package credentials collects the identity material OpenVPN hands to an
// --auth-user-pass-verify script, either through the environment or through
// a temporary credentials file.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/nupi-ai/openvpn-authc/internal/authc"
	"github.com/nupi-ai/openvpn-authc/internal/constants"
	"github.com/nupi-ai/openvpn-authc/internal/util/numparse"
)

// Source produces the credential for a single authentication attempt.
type Source interface {
	Load() (authc.Credential, error)
}

// LookupFunc reads one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// IsVerifyHook reports whether the process runs as OpenVPN's
// user/password verification script.
func IsVerifyHook(lookup LookupFunc) bool {
	scriptType, ok := lookup(constants.EnvVarScriptType)
	return ok && slices.Contains(constants.VerifyScriptTypes, scriptType)
}

// Env reads username and password from the "username" and "password"
// environment variables (OpenVPN's via-env method).
type Env struct {
	Lookup LookupFunc
	Logger *log.Logger
}

func (s Env) Load() (authc.Credential, error) {
	lookup := orDefault(s.Lookup)
	var c authc.Credential
	c.Username, _ = lookup(constants.EnvVarUsername)
	c.Password, _ = lookup(constants.EnvVarPassword)
	fillClient(&c, lookup, s.Logger)
	return c.Bounded(), nil
}

// File reads username and password from the first two lines of Path
// (OpenVPN's via-file method). Client details still come from the environment.
type File struct {
	Path   string
	Lookup LookupFunc
	Logger *log.Logger
}

func (s File) Load() (authc.Credential, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return authc.Credential{}, fmt.Errorf("credentials: open %s: %w", s.Path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	username, err := readCredentialLine(br)
	if err != nil {
		return authc.Credential{}, fmt.Errorf("credentials: read username from %s: %w", s.Path, err)
	}
	password, err := readCredentialLine(br)
	if err != nil {
		return authc.Credential{}, fmt.Errorf("credentials: read password from %s: %w", s.Path, err)
	}

	c := authc.Credential{Username: username, Password: password}
	fillClient(&c, orDefault(s.Lookup), s.Logger)
	return c.Bounded(), nil
}

// readCredentialLine returns the next line without its trailing newline.
// Only end of input before any byte counts as a missing line.
func readCredentialLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if line == "" && err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// fillClient copies certificate and client address details, warning about
// every variable OpenVPN did not set.
func fillClient(c *authc.Credential, lookup LookupFunc, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok {
			logger.Printf("Warning: environmental variable %s is not set.", key)
		}
		return v, ok
	}

	c.CommonName, _ = get(constants.EnvVarCommonName)
	c.ClientIP, _ = get(constants.EnvVarClientIP)
	if port, ok := get(constants.EnvVarClientPort); ok {
		c.ClientPort = numparse.Atoi(port)
	}
}

func orDefault(lookup LookupFunc) LookupFunc {
	if lookup == nil {
		return os.LookupEnv
	}
	return lookup
}

// Static hands out a credential supplied directly, e.g. on the command line.
type Static authc.Credential

func (s Static) Load() (authc.Credential, error) {
	return authc.Credential(s).Bounded(), nil
}
