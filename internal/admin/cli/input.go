package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// getPassword prints prompt and reads a password. On a terminal the input is
// not echoed; otherwise one line is read from reader, which lets scripts
// pipe the password in.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func (a *App) getPassword(prompt string) ([]byte, error) {
	if !isTerminal(a.stdinFd) {
		return readLine(a.in)
	}

	if _, err := fmt.Fprint(a.errOut, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(a.stdinFd)
	fmt.Fprintln(a.errOut)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func readLine(reader *bufio.Reader) ([]byte, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
