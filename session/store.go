package session

// Store persists the backend-issued bearer token between console invocations.
// The token is opaque: it is presented to the backend exactly as issued and is
// considered valid until the backend rejects it. No expiry is tracked locally.
type Store interface {
	// Token returns the stored token, or an empty string when none is stored.
	Token() (string, error)

	// SetToken replaces the stored token.
	SetToken(token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error
}
