package workflow

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(question string) (bool, error)

func (f ConfirmFunc) Confirm(question string) (bool, error) { return f(question) }

// PromptConfirmer reads the answer from In after writing the question to Out.
// Only "yes" or "y" (any case) approves; anything else, including EOF, declines.
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptConfirmer) Confirm(question string) (bool, error) {
	if p.Out != nil {
		fmt.Fprintf(p.Out, "%s [yes/no]: ", strings.TrimSpace(question))
	}
	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	ans := strings.TrimSpace(strings.ToLower(line))
	return ans == "y" || ans == "yes", nil
}
