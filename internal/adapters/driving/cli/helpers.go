package cli

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/term"
)

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// confirm asks a yes/no question. Anything but y/yes is no.
func confirm(reader *bufio.Reader) bool {
	switch strings.ToLower(readLine(reader)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readPassword reads a secret without echoing when stdin is a terminal,
// falling back to a plain line read.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}
