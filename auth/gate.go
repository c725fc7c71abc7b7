// Package auth implements the session/role gate every console page depends
// on: resolve the stored bearer token into a user, or send the user to the
// login or unauthorized destination and stop.
//
// The check is advisory only. A client-side gate can be bypassed by calling
// the API directly, so the backend still enforces authorization on every
// protected endpoint.
package auth

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/openshelf/go-inventory-console/api"
	apperrors "github.com/openshelf/go-inventory-console/internal/errors"
	"github.com/openshelf/go-inventory-console/session"
)

// IdentityClient is the slice of the backend API the gate needs.
type IdentityClient interface {
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context, token string) (api.User, error)
}

// Gate resolves sessions for console pages.
type Gate struct {
	client IdentityClient
	store  session.Store
	nav    Navigator
}

// NewGate initializes a Gate with its required dependencies.
func NewGate(client IdentityClient, store session.Store, nav Navigator) (*Gate, error) {
	if client == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewGate] identity client is required")
	}
	if store == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewGate] session store is required")
	}
	if nav == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewGate] navigator is required")
	}
	return &Gate{client: client, store: store, nav: nav}, nil
}

// ResolveSession returns the current user when their roles intersect
// allowedRoles. On any failure it navigates away (login for missing/rejected
// tokens, unauthorized for insufficient roles) and returns an error; callers
// must not proceed. No network call is made when no token is stored.
func (g *Gate) ResolveSession(ctx context.Context, allowedRoles []string) (*api.User, error) {
	user, err := g.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if !HasAnyRole(user.Roles, allowedRoles) {
		g.nav.GoToUnauthorized()
		return nil, apperrors.Wrapf(apperrors.ErrForbidden, "user %q has roles %q", user.Username, user.Roles)
	}
	return user, nil
}

// CurrentUser resolves the stored token into a user without any role check,
// for pages that only display identity. The redirect-and-clear behavior on
// authentication failure is identical to ResolveSession.
func (g *Gate) CurrentUser(ctx context.Context) (*api.User, error) {
	token, err := g.store.Token()
	if err != nil {
		return nil, apperrors.Wrapf(err, "[Gate.CurrentUser] read token")
	}
	if token == "" {
		g.nav.GoToLogin()
		return nil, apperrors.ErrNoToken
	}

	user, err := g.client.Me(ctx, token)
	if err != nil {
		// Authentication failure always clears the stored token; it is never
		// surfaced inline.
		if clearErr := g.store.Clear(); clearErr != nil {
			log.Err(clearErr).Msg("Failed to clear rejected token")
		}
		g.nav.GoToLogin()
		log.Debug().Err(err).Msg("Identity request rejected")
		return nil, apperrors.Wrapf(apperrors.ErrNotAuthenticated, "%v", err)
	}
	return &user, nil
}

// Login exchanges credentials for a token and persists it.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	token, err := g.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := g.store.SetToken(token); err != nil {
		return apperrors.Wrapf(err, "[Gate.Login] persist token")
	}
	return nil
}

// Logout deletes the stored token and navigates to the login destination.
func (g *Gate) Logout() error {
	if err := g.store.Clear(); err != nil {
		return apperrors.Wrapf(err, "[Gate.Logout] clear token")
	}
	g.nav.GoToLogin()
	return nil
}
