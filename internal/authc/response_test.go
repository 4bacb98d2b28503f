package authc

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseReplyAccepted(t *testing.T) {
	for _, raw := range []string{"OK\n", "ok more text\n", "Ok\r\n", "oK\f\r\n", "OK authenticated\n"} {
		reply, err := ParseReply(raw)
		if err != nil {
			t.Fatalf("ParseReply(%q): unexpected error %v", raw, err)
		}
		if !reply.Accepted() {
			t.Errorf("ParseReply(%q) not accepted (status %q)", raw, reply.Status)
		}
	}
}

func TestParseReplyRejected(t *testing.T) {
	tests := []struct {
		raw      string
		wantLine string
	}{
		{"FAIL: bad pw\n", "FAIL: bad pw"},
		{"ERR\r\n", "ERR"},
		{"O\r\n", "O"},
		{"NO OK\n", "NO OK"},
	}
	for _, tc := range tests {
		reply, err := ParseReply(tc.raw)
		if err != nil {
			t.Fatalf("ParseReply(%q): unexpected error %v", tc.raw, err)
		}
		if reply.Accepted() {
			t.Errorf("ParseReply(%q) accepted, want rejected", tc.raw)
		}
		if reply.Line != tc.wantLine {
			t.Errorf("ParseReply(%q).Line = %q, want %q", tc.raw, reply.Line, tc.wantLine)
		}
	}
}

func TestParseReplyMalformed(t *testing.T) {
	for _, raw := range []string{"", "K\n", "OK", "\r\n"} {
		reply, err := ParseReply(raw)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("ParseReply(%q) error = %v, want ErrMalformedResponse", raw, err)
		}
		if reply.Accepted() {
			t.Errorf("ParseReply(%q) must never be accepted", raw)
		}
	}
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single line", "OK fine\n", "OK fine\n"},
		{"stops at first newline", "OK\nsecond line\n", "OK\n"},
		{"partial line at eof", "FAIL no newline", "FAIL no newline"},
		{"capped", strings.Repeat("x", 5000), strings.Repeat("x", MaxLineLength)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readLine(strings.NewReader(tc.in))
			if err != nil {
				t.Fatalf("readLine: %v", err)
			}
			if got != tc.want {
				t.Fatalf("readLine = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReadLineEmptyStream(t *testing.T) {
	_, err := readLine(strings.NewReader(""))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("readLine error = %v, want io.EOF", err)
	}
}
