package config

import (
	"fmt"
	"io"

	"github.com/nupi-ai/openvpn-authc/internal/constants"
)

const sampleTemplate = `#
# WHAT: openvpn-authc sample configuration file
#
# NOTES:
# - empty lines are ignored.
# - lines started with hash (#) are ignored.
# - invalid parameters are ignored.
#

# Authentication server IP address, full qualified domain name (FQDN) or socket file
# Type: string
# Default: %[1]s
hostname = %[1]s


# Authentication server listening port.
# NOTE: this option is silently ignored if
# hostname is path to unix domain socket file
#
# Type: integer
# Default: %[2]d
port = %[2]d

# Authentication timeout in seconds
# Assume, that authentication has failed
# if authentication server has not replied
# in specified amount of seconds.
#
# Type: integer
# Default: %[3]d
timeout = %[3]d

# EOF
`

// WriteSample writes a commented configuration file holding the defaults.
func WriteSample(w io.Writer) error {
	_, err := fmt.Fprintf(w, sampleTemplate,
		constants.DefaultHostname,
		constants.DefaultPort,
		int(constants.DefaultAuthTimeout.Seconds()),
	)
	return err
}
