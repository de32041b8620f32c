package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func fakeTerminal(t *testing.T, read func(fd int) ([]byte, error)) {
	t.Helper()
	origTerminal, origRead := stdinTerminal, readPassword
	stdinTerminal = func() (int, bool) { return 7, true }
	readPassword = read
	t.Cleanup(func() {
		stdinTerminal, readPassword = origTerminal, origRead
	})
}

func TestPrompt_TerminalReadsWithoutEcho(t *testing.T) {
	var gotFD int
	fakeTerminal(t, func(fd int) ([]byte, error) {
		gotFD = fd
		return []byte("s3cret"), nil
	})

	var in input
	var w bytes.Buffer
	got, err := in.prompt(&w, "Password: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "s3cret" {
		t.Errorf("expected s3cret, got %q", got)
	}
	if gotFD != 7 {
		t.Errorf("expected fd 7, got %d", gotFD)
	}
	if w.String() != "Password: \n" {
		t.Errorf("unexpected prompt output %q", w.String())
	}
}

func TestPrompt_TerminalReadError(t *testing.T) {
	fakeTerminal(t, func(int) ([]byte, error) {
		return nil, errors.New("interrupted")
	})

	var in input
	_, err := in.prompt(&bytes.Buffer{}, "Password: ")
	if err == nil || err.Error() != "read input: interrupted" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPrompt_InjectedReaderSkipsTerminal(t *testing.T) {
	fakeTerminal(t, func(int) ([]byte, error) {
		t.Fatal("terminal read used despite injected input")
		return nil, nil
	})

	var in input
	in.set(strings.NewReader("first\nsecond\n"))
	var w bytes.Buffer
	a, err := in.prompt(&w, "Password: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := in.prompt(&w, "Confirm password: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != "first" || b != "second" {
		t.Errorf("expected first/second, got %q/%q", a, b)
	}
	if w.String() != "Password: Confirm password: " {
		t.Errorf("unexpected prompt output %q", w.String())
	}
}

func TestLoginCmd_SetInputSkipsTerminal(t *testing.T) {
	fakeTerminal(t, func(int) ([]byte, error) {
		t.Fatal("terminal read used despite SetInput")
		return nil, nil
	})

	cmd := &LoginCmd{}
	cmd.SetInput(strings.NewReader("secret\n"))
	got, err := cmd.in.prompt(&bytes.Buffer{}, "Password: ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "secret" {
		t.Errorf("expected secret, got %q", got)
	}
}
