package authc

import "github.com/nupi-ai/openvpn-authc/internal/constants"

// MaxFieldLength is the largest number of bytes forwarded for any text field.
const MaxFieldLength = constants.MaxFieldLength

// Credential is the identity material forwarded to the authentication server
// for a single attempt.
type Credential struct {
	Username   string
	Password   string
	CommonName string
	ClientIP   string
	ClientPort int
}

// Truncate cuts s to at most MaxFieldLength bytes. Over-long values are
// shortened silently; servers depend on the historical fixed field size.
func Truncate(s string) string {
	if len(s) > MaxFieldLength {
		return s[:MaxFieldLength]
	}
	return s
}

// Bounded returns a copy of c with every text field passed through Truncate.
func (c Credential) Bounded() Credential {
	return Credential{
		Username:   Truncate(c.Username),
		Password:   Truncate(c.Password),
		CommonName: Truncate(c.CommonName),
		ClientIP:   Truncate(c.ClientIP),
		ClientPort: c.ClientPort,
	}
}
