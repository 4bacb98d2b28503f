package authc

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"short", "alice", 5},
		{"at bound", strings.Repeat("a", MaxFieldLength), MaxFieldLength},
		{"one over", strings.Repeat("a", MaxFieldLength+1), MaxFieldLength},
		{"far over", strings.Repeat("a", 4*MaxFieldLength), MaxFieldLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Truncate(tc.in)
			if len(got) != tc.want {
				t.Fatalf("len(Truncate) = %d, want %d", len(got), tc.want)
			}
			if !strings.HasPrefix(tc.in, got) {
				t.Fatalf("Truncate result is not a prefix of the input")
			}
		})
	}
}

func TestCredentialBounded(t *testing.T) {
	long := strings.Repeat("x", MaxFieldLength+10)
	c := Credential{
		Username:   long,
		Password:   long,
		CommonName: long,
		ClientIP:   long,
		ClientPort: 51820,
	}.Bounded()

	for name, v := range map[string]string{
		"username":    c.Username,
		"password":    c.Password,
		"common_name": c.CommonName,
		"client_ip":   c.ClientIP,
	} {
		if len(v) != MaxFieldLength {
			t.Errorf("%s: len = %d, want %d", name, len(v), MaxFieldLength)
		}
	}
	if c.ClientPort != 51820 {
		t.Errorf("ClientPort = %d, want 51820", c.ClientPort)
	}
}
