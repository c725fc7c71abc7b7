package replenishment

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// flashDismissAfter is how long transient alerts stay visible on sinks that
// support dismissal. The console sink prints and moves on.
const flashDismissAfter = 3 * time.Second

// Flash surfaces transient success/error alerts for user actions.
type Flash interface {
	Success(message string)
	Error(message string)
}

// Confirmer asks the user to approve a destructive action before any request
// is issued.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConsoleFlash prints alerts to the console.
type ConsoleFlash struct {
	Out io.Writer
}

func (f ConsoleFlash) Success(message string) {
	fmt.Fprintln(f.Out, message)
}

func (f ConsoleFlash) Error(message string) {
	fmt.Fprintln(f.Out, "Error:", message)
}

// DismissAfter reports the transient-alert lifetime for sinks that render
// dismissable alerts.
func (ConsoleFlash) DismissAfter() time.Duration {
	return flashDismissAfter
}

// ConsoleConfirmer reads a yes/no answer from the terminal.
type ConsoleConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c ConsoleConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(c.Out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(c.In)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
