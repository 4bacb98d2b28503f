//go:build unix

package authc

import "golang.org/x/sys/unix"

// maxUnixPathLen is the capacity of sockaddr_un.sun_path on this platform.
func maxUnixPathLen() int {
	return len(unix.RawSockaddrUnix{}.Path)
}
