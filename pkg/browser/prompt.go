package browser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// LinePrompter reads one answer per line from a reader and echoes the
// prompts to a writer. It serves piped stdin and tests.
type LinePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewLinePrompter creates a prompter over r. Prompts go to w; pass
// io.Discard to suppress them.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewScanner(r), out: w}
}

func (p *LinePrompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Choose prints the menu and reads a selection.
func (p *LinePrompter) Choose(menu []MenuItem) (string, error) {
	var sb strings.Builder
	for _, item := range menu {
		fmt.Fprintf(&sb, "  %s) %s\n", item.Key, item.Label)
	}
	sb.WriteString("Enter choice: ")
	return p.readLine(sb.String())
}

// Ordinal reads a file number.
func (p *LinePrompter) Ordinal(n int) (string, error) {
	return p.readLine(fmt.Sprintf("File number (1-%d): ", n))
}

// Continue waits for a line.
func (p *LinePrompter) Continue() error {
	_, err := p.readLine("Press enter to continue...")
	return err
}

// PromptUI prompts on the terminal with promptui, validating input as it
// is typed.
type PromptUI struct{}

// Choose reads a menu selection.
func (PromptUI) Choose(menu []MenuItem) (string, error) {
	labels := make([]string, len(menu))
	for i, item := range menu {
		labels[i] = item.Key + ") " + item.Label
	}
	prompt := promptui.Prompt{
		Label: strings.Join(labels, "  "),
		Validate: func(input string) error {
			_, err := ParseChoice(input)
			return err
		},
	}
	return runPrompt(prompt)
}

// Ordinal reads a file number in [1, n].
func (PromptUI) Ordinal(n int) (string, error) {
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("File number (1-%d)", n),
		Validate: func(input string) error {
			_, err := ParseOrdinal(input, n)
			return err
		},
	}
	return runPrompt(prompt)
}

// Continue waits for enter.
func (PromptUI) Continue() error {
	_, err := runPrompt(promptui.Prompt{Label: "Press enter to continue"})
	return err
}

// runPrompt maps Ctrl-C and Ctrl-D to io.EOF so the session quits.
func runPrompt(prompt promptui.Prompt) (string, error) {
	result, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return "", io.EOF
	}
	return result, err
}
