// Package replenishment drives the replenishment page: generating
// suggestions, listing them (active or all), and accepting or ignoring
// individual suggestions. After every mutation the list is re-fetched from
// the server rather than patched locally, so what is shown is always a full
// server snapshot.
package replenishment

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/openshelf/go-inventory-console/api"
	"github.com/openshelf/go-inventory-console/auth"
	apperrors "github.com/openshelf/go-inventory-console/internal/errors"
	"github.com/openshelf/go-inventory-console/session"
)

// Generation defaults applied client-side when the corresponding input is
// left empty.
const (
	defaultLookbackDays  = 30
	defaultForecastDays  = 7
	defaultSafetyFactor  = 1.5
	suggestionListLimit  = 100
	genericFailureDetail = "Network error. Please try again."
)

// BackendClient is the slice of the backend API the replenishment page needs.
type BackendClient interface {
	GenerateSuggestions(ctx context.Context, token string, params api.GenerationParams) error
	Suggestions(ctx context.Context, token string, activeOnly bool, limit int) ([]api.Suggestion, error)
	SuggestionAction(ctx context.Context, token string, suggestionID int64, action string) error
}

// SessionGate restricts the page to manager/admin roles.
type SessionGate interface {
	ResolveSession(ctx context.Context, allowedRoles []string) (*api.User, error)
}

// GenerateInput carries the raw generation form fields; empty fields fall
// back to the 30/7/1.5 defaults.
type GenerateInput struct {
	LookbackDays      string
	ForecastDays      string
	SafetyStockFactor string
}

// Controller orchestrates the replenishment page. It remembers the last-used
// active-only filter so accept/ignore reload the same view the user was
// looking at.
type Controller struct {
	client  BackendClient
	gate    SessionGate
	store   session.Store
	out     io.Writer
	flash   Flash
	confirm Confirmer

	activeOnly bool
}

// NewController initializes the replenishment page controller. The initial
// list filter is active-only.
func NewController(client BackendClient, gate SessionGate, store session.Store, out io.Writer, flash Flash, confirm Confirmer) (*Controller, error) {
	if client == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] backend client is required")
	}
	if gate == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] session gate is required")
	}
	if store == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] session store is required")
	}
	if flash == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] flash is required")
	}
	if confirm == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] confirmer is required")
	}
	return &Controller{
		client:     client,
		gate:       gate,
		store:      store,
		out:        out,
		flash:      flash,
		confirm:    confirm,
		activeOnly: true,
	}, nil
}

// Generate triggers suggestion generation, then reloads the active list.
func (c *Controller) Generate(ctx context.Context, input GenerateInput) error {
	if _, err := c.gate.ResolveSession(ctx, auth.ManagerRoles); err != nil {
		return err
	}

	params, err := input.parse()
	if err != nil {
		c.flash.Error(err.Error())
		return err
	}

	token, err := c.store.Token()
	if err != nil {
		return err
	}
	if err := c.client.GenerateSuggestions(ctx, token, params); err != nil {
		log.Err(err).Msg("Suggestion generation failed")
		c.flash.Error(api.ErrorMessage(err, genericFailureDetail))
		return err
	}

	c.flash.Success("Suggestions generated successfully!")
	c.activeOnly = true
	return c.reload(ctx)
}

// ShowSuggestions lists either active-only or all suggestions and remembers
// the choice for subsequent actions.
func (c *Controller) ShowSuggestions(ctx context.Context, activeOnly bool) error {
	if _, err := c.gate.ResolveSession(ctx, auth.ManagerRoles); err != nil {
		return err
	}
	c.activeOnly = activeOnly
	return c.reload(ctx)
}

// Accept marks a suggestion as acted upon, then reloads the current view.
func (c *Controller) Accept(ctx context.Context, suggestionID int64) error {
	if _, err := c.gate.ResolveSession(ctx, auth.ManagerRoles); err != nil {
		return err
	}

	token, err := c.store.Token()
	if err != nil {
		return err
	}
	if err := c.client.SuggestionAction(ctx, token, suggestionID, api.ActionAccept); err != nil {
		log.Err(err).Int64("suggestion_id", suggestionID).Msg("Accept failed")
		c.flash.Error(api.ErrorMessage(err, genericFailureDetail))
		return err
	}

	c.flash.Success("Suggestion accepted – stock order recorded")
	return c.reload(ctx)
}

// Ignore removes a suggestion after interactive confirmation. Declining the
// confirmation issues no request at all.
func (c *Controller) Ignore(ctx context.Context, suggestionID int64) error {
	if _, err := c.gate.ResolveSession(ctx, auth.ManagerRoles); err != nil {
		return err
	}

	if !c.confirm.Confirm("Are you sure you want to ignore this suggestion?") {
		return nil
	}

	token, err := c.store.Token()
	if err != nil {
		return err
	}
	if err := c.client.SuggestionAction(ctx, token, suggestionID, api.ActionIgnore); err != nil {
		log.Err(err).Int64("suggestion_id", suggestionID).Msg("Ignore failed")
		c.flash.Error(api.ErrorMessage(err, genericFailureDetail))
		return err
	}

	c.flash.Success("Suggestion ignored")
	return c.reload(ctx)
}

func (c *Controller) reload(ctx context.Context) error {
	token, err := c.store.Token()
	if err != nil {
		return err
	}
	suggestions, err := c.client.Suggestions(ctx, token, c.activeOnly, suggestionListLimit)
	if err != nil {
		log.Err(err).Msg("Suggestion list load failed")
		fmt.Fprintln(c.out, "Error loading suggestions.")
		return err
	}

	fmt.Fprint(c.out, RenderSuggestions(suggestions))
	return nil
}

func (input GenerateInput) parse() (api.GenerationParams, error) {
	params := api.GenerationParams{
		LookbackDays:      defaultLookbackDays,
		ForecastDays:      defaultForecastDays,
		SafetyStockFactor: defaultSafetyFactor,
	}

	if raw := strings.TrimSpace(input.LookbackDays); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return api.GenerationParams{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "lookback days must be a positive integer")
		}
		params.LookbackDays = days
	}
	if raw := strings.TrimSpace(input.ForecastDays); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return api.GenerationParams{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "forecast days must be a positive integer")
		}
		params.ForecastDays = days
	}
	if raw := strings.TrimSpace(input.SafetyStockFactor); raw != "" {
		factor, err := strconv.ParseFloat(raw, 64)
		if err != nil || factor <= 0 {
			return api.GenerationParams{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "safety stock factor must be a positive number")
		}
		params.SafetyStockFactor = factor
	}
	return params, nil
}
