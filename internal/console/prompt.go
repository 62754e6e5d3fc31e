package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads operator input line by line. All prompt loops run over it so
// tests can drive sessions from a scripted reader.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// Secret, when set, reads a password without echo. Left nil (tests,
	// piped input) passwords are read as plain lines.
	Secret func(label string) (string, error)
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints the prompt label and reads one trimmed line. io.EOF is returned
// only when the input is exhausted with no data left.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s %s: ", promptMark, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password reads a credential, without echo when a Secret reader is
// installed.
func (p *Prompter) Password(label string) (string, error) {
	if p.Secret != nil {
		return p.Secret(label)
	}
	return p.Line(label)
}

// Confirm asks a yes/no question; only an explicit "yes" (any case) counts.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Line(label + " (yes/no)")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "yes"), nil
}

// ID reads a numeric identifier. Malformed input is an error; the caller
// aborts the operation rather than re-asking.
func (p *Prompter) ID(label string) (int64, error) {
	line, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	id, convErr := strconv.ParseInt(line, 10, 64)
	if convErr != nil {
		return 0, fmt.Errorf("invalid id %q", line)
	}
	return id, nil
}

// RequiredField re-asks until the value passes valid. Used during add, where
// mandatory fields cannot be left blank.
func (p *Prompter) RequiredField(label string, valid func(string) bool, hint string) (string, error) {
	for {
		value, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if valid == nil || valid(value) {
			return value, nil
		}
		fmt.Fprintln(p.out, errorStyle.Render(hint))
	}
}

// OptionalField accepts blank (meaning "unset") and otherwise re-asks until
// the value passes valid.
func (p *Prompter) OptionalField(label string, valid func(string) bool, hint string) (string, error) {
	for {
		value, err := p.Line(label + " (optional)")
		if err != nil {
			return "", err
		}
		if value == "" || valid == nil || valid(value) {
			return value, nil
		}
		fmt.Fprintln(p.out, errorStyle.Render(hint))
	}
}

// PatchField is the update-time variant: blank keeps the current value (nil
// return), anything else re-asks until valid and returns the new value.
func (p *Prompter) PatchField(label, current string, valid func(string) bool, hint string) (*string, error) {
	for {
		value, err := p.Line(fmt.Sprintf("%s [%s]", label, displayCurrent(current)))
		if err != nil {
			return nil, err
		}
		if value == "" {
			return nil, nil
		}
		if valid == nil || valid(value) {
			return &value, nil
		}
		fmt.Fprintln(p.out, errorStyle.Render(hint))
	}
}

func displayCurrent(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
