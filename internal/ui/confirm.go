package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user yes/no questions on the terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm presents a modal-style prompt and resolves true only on an explicit
// yes. Anything else, including just pressing enter, counts as cancel.
func (p *Prompter) Confirm(title, message string) (bool, error) {
	fmt.Fprintf(p.out, "%s\n%s [y/N]: ", title, message)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// ReadLine reads one trimmed line of input, for form fields.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
