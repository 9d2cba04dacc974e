package gate

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TerminalConfirmer reads a yes/no answer from an input stream,
// normally stdin. Answers starting with "y" (case-insensitive) are
// affirmative; everything else, including EOF, is a refusal.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer.
func (c *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprint(c.Out, prompt)

	reader := bufio.NewReader(c.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(answer, "y"), nil
}
