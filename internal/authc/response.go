package authc

import (
	"bufio"
	"io"
	"strings"

	"github.com/nupi-ai/openvpn-authc/internal/constants"
)

const (
	// MaxLineLength is the most bytes read from the server's reply.
	MaxLineLength = constants.MaxLineLength

	statusOK        = "OK"
	minReplyLength  = 3
	replyTrimCutset = "\r\n\f"
)

// Reply is a well-formed server response.
type Reply struct {
	// Line is the response with trailing CR, LF and FF removed.
	Line string
	// Status holds the first two characters of Line.
	Status string
}

// Accepted reports whether the status token is "OK", ignoring case.
func (r Reply) Accepted() bool {
	return strings.EqualFold(r.Status, statusOK)
}

// ParseReply classifies one raw line as read from the server, terminator
// included. Lines shorter than three bytes before trimming cannot carry a
// status token and yield ErrMalformedResponse.
func ParseReply(raw string) (Reply, error) {
	if len(raw) < minReplyLength {
		return Reply{}, &Error{Kind: ErrMalformedResponse, Reply: raw}
	}
	line := strings.TrimRight(raw, replyTrimCutset)
	status := line
	if len(status) > len(statusOK) {
		status = status[:len(statusOK)]
	}
	return Reply{Line: line, Status: status}, nil
}

// readLine reads a single line of at most MaxLineLength bytes. A partial line
// at end of stream is returned as-is; an error is reported only when nothing
// was read.
func readLine(r io.Reader) (string, error) {
	br := bufio.NewReader(io.LimitReader(r, MaxLineLength))
	line, err := br.ReadString('\n')
	if line == "" {
		return "", err
	}
	return line, nil
}
