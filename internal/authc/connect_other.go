//go:build !unix

package authc

// maxUnixPathLen reports no limit; the dial itself rejects unusable paths.
func maxUnixPathLen() int {
	return 0
}
