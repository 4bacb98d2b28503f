package constants

// Authentication server defaults used when no configuration file overrides them.
const (
	DefaultHostname = "127.0.0.1"
	DefaultPort     = 1559
)

// Historical buffer sizes of the authentication wire format. Servers may rely on
// them, so field and message lengths are still capped at these bounds.
const (
	CredentialBufferSize = 512
	WireBufferSize       = 1024

	// MaxFieldLength leaves room for the terminator of the historical buffer.
	MaxFieldLength   = CredentialBufferSize - 1
	MaxRequestLength = WireBufferSize - 1
	MaxLineLength    = WireBufferSize - 1
)

// ConfigMaxLines caps how many lines of a configuration file are parsed.
const ConfigMaxLines = 1000
