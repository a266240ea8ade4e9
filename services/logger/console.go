package logsvc

import (
	"fmt"
	"io"

	"github.com/unicrm/unicli/core"
)

// ConsoleNotifier writes transient notices to a terminal.
type ConsoleNotifier struct {
	out io.Writer
}

var _ core.Notifier = (*ConsoleNotifier)(nil)

func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n ConsoleNotifier) Success(msg string) {
	fmt.Fprintf(n.out, "✔ %s\n", msg)
}

func (n ConsoleNotifier) Info(msg string) {
	fmt.Fprintf(n.out, "ℹ %s\n", msg)
}

func (n ConsoleNotifier) Error(msg string) {
	fmt.Fprintf(n.out, "✘ %s\n", msg)
}
