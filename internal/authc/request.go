package authc

import (
	"bufio"
	"fmt"
	"io"

	"github.com/nupi-ai/openvpn-authc/internal/constants"
)

// MaxRequestLength caps an encoded request; longer blocks are cut at this size.
const MaxRequestLength = constants.MaxRequestLength

// EncodeRequest renders the credential in the line-based wire format:
//
//	username=<username>
//	password=<password>
//	common_name=<common_name>
//	host=<client_ip>
//	port=<client_port>
//	<blank line>
//
// Values are not escaped. Embedded newlines or "=" reach the server verbatim.
func EncodeRequest(c Credential) []byte {
	c = c.Bounded()
	block := fmt.Sprintf("username=%s\npassword=%s\ncommon_name=%s\nhost=%s\nport=%d\n\n",
		c.Username, c.Password, c.CommonName, c.ClientIP, c.ClientPort)
	if len(block) > MaxRequestLength {
		block = block[:MaxRequestLength]
	}
	return []byte(block)
}

// writeRequest writes the encoded credential and flushes it to w.
func writeRequest(w io.Writer, c Credential) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(EncodeRequest(c)); err != nil {
		return err
	}
	return bw.Flush()
}
