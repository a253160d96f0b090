package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// promptInput is the reader confirmations consume, replaceable in
// tests.
var promptInput io.Reader = os.Stdin

// confirm asks a yes/no question and reads one line. Only "y" and
// "yes" (any case) accept; everything else, including EOF, declines.
// The question goes to stderr so it shows up even when stdout is
// piped.
func confirm(question string) bool {
	out.Error("%s [y/N] ", question)

	line, err := bufio.NewReader(promptInput).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
