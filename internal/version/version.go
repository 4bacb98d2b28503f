package version

import (
	"regexp"
	"strings"
)

// version is overridden at build time via -ldflags "-X .../internal/version.version=...".
var version = "dev"

// String returns the build version for the current binary.
func String() string {
	return version
}

// ForTesting overrides the version string and returns a cleanup function
// that restores the original value. Must not be called concurrently.
func ForTesting(v string) func() {
	original := version
	version = v
	return func() { version = original }
}

// gitDescribeSuffix matches the trailing "-N-gHASH" added by git describe
// (e.g., "0.3.0-5-gabcdef" → strip "-5-gabcdef").
var gitDescribeSuffix = regexp.MustCompile(`-\d+-g[0-9a-f]+$`)

// Release strips the "v" prefix and any git-describe suffix, leaving the
// bare release number printed by --version.
func Release(v string) string {
	v = strings.TrimPrefix(v, "v")
	return gitDescribeSuffix.ReplaceAllString(v, "")
}

// Banner returns the "<program> <release>" line printed by --version.
func Banner(program string) string {
	return program + " " + Release(String())
}
