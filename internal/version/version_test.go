package version

import "testing"

func TestStringReflectsBuildVersion(t *testing.T) {
	cleanup := ForTesting("1.2.3-test")
	t.Cleanup(cleanup)

	if got := String(); got != "1.2.3-test" {
		t.Fatalf("expected version 1.2.3-test, got %s", got)
	}
}

func TestRelease(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.12.0", "0.12.0"},
		{"v0.12.0", "0.12.0"},
		{"v0.12.0-5-gabcdef0", "0.12.0"},
		{"dev", "dev"},
	}
	for _, tc := range tests {
		if got := Release(tc.in); got != tc.want {
			t.Errorf("Release(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBanner(t *testing.T) {
	t.Cleanup(ForTesting("v0.12.0-3-g1234567"))

	if got := Banner("openvpn-authc"); got != "openvpn-authc 0.12.0" {
		t.Fatalf("Banner() = %q", got)
	}
}
