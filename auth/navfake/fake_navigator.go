// Package navfake provides a call-recording navigator for testing.
package navfake

// Navigator records where the gate tried to send the user.
type Navigator struct {
	LoginCalls        int
	UnauthorizedCalls int
}

func (n *Navigator) GoToLogin() {
	n.LoginCalls++
}

func (n *Navigator) GoToUnauthorized() {
	n.UnauthorizedCalls++
}
