package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal hooks, replaced in tests.
var (
	stdinTerminal = func() (int, bool) {
		fd := int(os.Stdin.Fd())
		return fd, term.IsTerminal(fd)
	}
	readPassword = term.ReadPassword
)

// input is the source for password prompts. Nil means os.Stdin, read
// without echo when it is a terminal.
type input struct {
	r *bufio.Reader
}

func (in *input) set(r io.Reader) {
	in.r = bufio.NewReader(r)
}

// prompt writes label to w and reads one line.
// A closed input with no text is an error.
func (in *input) prompt(w io.Writer, label string) (string, error) {
	if in.r == nil {
		if fd, ok := stdinTerminal(); ok {
			return promptTerminal(w, fd, label)
		}
		in.set(os.Stdin)
	}
	fmt.Fprint(w, label)
	line, err := in.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	if err != nil && line == "" {
		return "", errors.New("no input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func promptTerminal(w io.Writer, fd int, label string) (string, error) {
	fmt.Fprint(w, label)
	b, err := readPassword(fd)
	// The typed newline is not echoed.
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}
