package config

import (
	"os"
	"path/filepath"
)

// SearchPaths lists the configuration files tried at startup, in order.
// OpenVPN runs verify scripts without a predictable working directory, so the
// system-wide locations come first.
var SearchPaths = []string{
	"/etc/openvpn_authc.conf",
	"/etc/openvpn/openvpn_authc.conf",
	"/usr/local/etc/openvpn_authc.conf",
	"/usr/local/etc/openvpn/openvpn_authc.conf",
	".openvpn_authc.conf",
}

// ExpandPath expands ~ to the user home directory.
func ExpandPath(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) == 1 {
			return home
		}
		if path[1] == '/' || path[1] == os.PathSeparator {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
