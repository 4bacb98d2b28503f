package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewVerboseCopiesToStderr(t *testing.T) {
	var stderr bytes.Buffer
	l, _ := New("openvpn-authc-test", true, &stderr)
	t.Cleanup(func() { _ = l.Close() })

	l.Printf("Connecting to authentication server %s using TCP socket.", "127.0.0.1:1559")

	got := stderr.String()
	want := "[" + l.AttemptID + "] Connecting to authentication server 127.0.0.1:1559 using TCP socket.\n"
	if got != want {
		t.Fatalf("stderr = %q, want %q", got, want)
	}
}

func TestNewQuietKeepsStderrClean(t *testing.T) {
	var stderr bytes.Buffer
	l, _ := New("openvpn-authc-test", false, &stderr)
	t.Cleanup(func() { _ = l.Close() })

	l.Printf("Authentication SUCCEEDED for user '%s'", "alice")
	if stderr.Len() != 0 {
		t.Fatalf("quiet logger wrote to stderr: %q", stderr.String())
	}
}

func TestNewAttemptID(t *testing.T) {
	a, b := NewAttemptID(), NewAttemptID()
	if len(a) != 8 || strings.Trim(a, "0123456789abcdef") != "" {
		t.Fatalf("attempt id %q is not 8 hex characters", a)
	}
	if a == b {
		t.Fatalf("attempt ids repeat: %q", a)
	}
}

type brokenSyslog struct{}

func (brokenSyslog) Write([]byte) (int, error) { return 0, errors.New("syslog connection lost") }

func TestSyslogFailureStillReachesStderr(t *testing.T) {
	var stderr bytes.Buffer
	l := newLogger(brokenSyslog{}, true, &stderr)

	l.Printf("Program invoked in TEST mode.")
	want := "[" + l.AttemptID + "] Program invoked in TEST mode.\n"
	if stderr.String() != want {
		t.Fatalf("stderr = %q, want %q", stderr.String(), want)
	}
}
