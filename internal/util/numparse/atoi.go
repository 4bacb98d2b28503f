// Package numparse holds the lenient integer parsing used for values that come
// from OpenVPN's environment and legacy configuration files.
package numparse

import "strconv"

// Atoi parses an optional sign followed by leading decimal digits, ignoring
// leading whitespace and anything after the digits. Input without digits, or
// that overflows an int, yields 0.
func Atoi(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0
	}
	return n
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
