package auth

import (
	"fmt"
	"io"
)

// Navigator is where the gate sends the user when a session cannot be
// resolved. It stands in for the browser frontend's page redirects; callers
// must stop once it has been invoked.
type Navigator interface {
	// GoToLogin is the destination for missing or rejected tokens.
	GoToLogin()

	// GoToUnauthorized is the destination for authenticated users whose roles
	// do not allow the page, carrying an error indicator.
	GoToUnauthorized()
}

// ConsoleNavigator renders redirects as terminal guidance.
type ConsoleNavigator struct {
	Out io.Writer
}

var _ Navigator = ConsoleNavigator{}

func (n ConsoleNavigator) GoToLogin() {
	fmt.Fprintln(n.Out, "You are not signed in. Run `console login` first.")
}

func (n ConsoleNavigator) GoToUnauthorized() {
	fmt.Fprintln(n.Out, "You do not have permission for this page. Returning to the dashboard. (error=unauthorized)")
}
