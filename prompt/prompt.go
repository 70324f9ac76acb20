// Package prompt defines the "ask the user" seam spec.md §6.3 names as
// an external collaborator. Only the interface and one minimal stdin
// implementation live here; the full interactive menu/field-editor
// dispatcher is out of scope per spec.md §1 and stays external to this
// module.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrUserCancel propagates from any Prompter method when the operator
// backs out of a prompt; callers must treat it as a non-error, no-op
// outcome, never as a failure (spec.md §7).
var ErrUserCancel = errors.New("prompt: user cancelled")

// Prompter is the external prompt service PartitionEditor and
// LabelLifecycle call through.
type Prompter interface {
	AskNumber(low, def, high int, label string) (int, error)
	AskYesNo(question string) (bool, error)
	AskString(question string) (string, error)
	AskPartNum(maxExclusive int, forNewSlot bool) (int, error)
}

// Stdin is a minimal, line-oriented Prompter backed by a bufio.Scanner,
// sufficient for the smoke-test binary in cmd/disklabel. It is
// deliberately not the full interactive dispatcher.
type Stdin struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewStdin builds a Stdin prompter reading from in and writing prompts
// to out.
func NewStdin(in io.Reader, out io.Writer) *Stdin {
	return &Stdin{in: bufio.NewScanner(in), out: out}
}

func (s *Stdin) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Stdin) AskNumber(low, def, high int, label string) (int, error) {
	line, err := s.readLine(fmt.Sprintf("%s (%d-%d, default %d): ", label, low, high, def))
	if err != nil {
		return 0, err
	}
	if line == "" {
		return def, nil
	}
	if line == "q" {
		return 0, ErrUserCancel
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("prompt: %q is not a number", line)
	}
	if v < low || v > high {
		return 0, fmt.Errorf("prompt: %d out of range [%d,%d]", v, low, high)
	}
	return v, nil
}

func (s *Stdin) AskYesNo(question string) (bool, error) {
	line, err := s.readLine(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes", nil
}

func (s *Stdin) AskString(question string) (string, error) {
	return s.readLine(question + ": ")
}

func (s *Stdin) AskPartNum(maxExclusive int, forNewSlot bool) (int, error) {
	label := "Partition number"
	if forNewSlot {
		label = "New partition number"
	}
	line, err := s.readLine(fmt.Sprintf("%s (0-%d): ", label, maxExclusive-1))
	if err != nil {
		return 0, err
	}
	if line == "q" {
		return 0, ErrUserCancel
	}
	v, err := strconv.Atoi(line)
	if err != nil || v < 0 || v >= maxExclusive {
		return 0, fmt.Errorf("prompt: invalid partition number %q", line)
	}
	return v, nil
}
