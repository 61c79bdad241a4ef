package console

import (
	"bufio"
	"io"
	"strings"
)

// Input reads prompted lines from the user.
type Input struct {
	scanner *bufio.Scanner
	printer *Printer
}

// NewInput reads from r and prints prompts through p.
func NewInput(r io.Reader, p *Printer) *Input {
	return &Input{scanner: bufio.NewScanner(r), printer: p}
}

// ReadLine prints prompt and returns the trimmed next line.
// ok is false at end of input.
func (in *Input) ReadLine(prompt string) (line string, ok bool) {
	in.printer.Prompt(prompt)
	if !in.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.scanner.Text()), true
}

// Err returns the first non-EOF read error.
func (in *Input) Err() error {
	return in.scanner.Err()
}

// IsExit reports whether q asks to leave the question loop.
func IsExit(q string) bool {
	switch strings.ToLower(strings.TrimSpace(q)) {
	case "exit", "quit", "q":
		return true
	}
	return false
}
