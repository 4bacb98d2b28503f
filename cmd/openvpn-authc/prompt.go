package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

// readPassword prompts on out and reads one line from in. Echo is disabled
// while typing when in is a terminal. End of input yields an empty password.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "No password was given from command line.")
	fmt.Fprint(out, "Password: ")
	defer fmt.Fprintln(out)

	if f, ok := in.(*os.File); ok && terminal.IsTerminal(int(f.Fd())) {
		password, err := terminal.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n\f"), nil
}
