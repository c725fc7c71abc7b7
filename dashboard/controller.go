// Package dashboard drives the dashboard page: identity line, summary
// metrics, low-stock alerts, today's sales and the top-products chart, with a
// periodic watch mode.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openshelf/go-inventory-console/api"
	"github.com/openshelf/go-inventory-console/auth"
	apperrors "github.com/openshelf/go-inventory-console/internal/errors"
	"github.com/openshelf/go-inventory-console/session"
)

// BackendClient is the slice of the backend API the dashboard needs.
type BackendClient interface {
	DashboardSummary(ctx context.Context, token string) (api.DashboardSummary, error)
	LowStockAlerts(ctx context.Context, token string) ([]api.LowStockAlert, error)
	DailySales(ctx context.Context, token string) (*api.DailySalesSummary, error)
	ProductPerformance(ctx context.Context, token string) ([]api.ProductPerformance, error)
}

// SessionGate resolves the current identity before any data loads.
type SessionGate interface {
	CurrentUser(ctx context.Context) (*api.User, error)
}

// Controller owns the page state that the browser frontend kept in
// module-level globals: the live chart instance and the viewer's role.
type Controller struct {
	client          BackendClient
	gate            SessionGate
	store           session.Store
	out             io.Writer
	refreshInterval time.Duration
	chartWidth      int

	chart     *BarChart
	isManager bool
}

// ControllerOption modifies a Controller during construction.
type ControllerOption func(*Controller)

// WithRefreshInterval overrides the watch-mode cadence (default 60s).
func WithRefreshInterval(interval time.Duration) ControllerOption {
	return func(c *Controller) {
		if interval > 0 {
			c.refreshInterval = interval
		}
	}
}

// WithChartWidth overrides the bar chart width in columns.
func WithChartWidth(width int) ControllerOption {
	return func(c *Controller) {
		c.chartWidth = width
	}
}

// NewController initializes the dashboard page controller.
func NewController(client BackendClient, gate SessionGate, store session.Store, out io.Writer, options ...ControllerOption) (*Controller, error) {
	if client == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] backend client is required")
	}
	if gate == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] session gate is required")
	}
	if store == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] session store is required")
	}
	controller := &Controller{
		client:          client,
		gate:            gate,
		store:           store,
		out:             out,
		refreshInterval: 60 * time.Second,
	}
	for _, option := range options {
		option(controller)
	}
	return controller, nil
}

// Run performs one full page load: resolve identity, then load each widget
// in sequence. A failed widget is logged and rendered as an inline error
// without aborting its siblings.
func (c *Controller) Run(ctx context.Context) error {
	user, err := c.gate.CurrentUser(ctx)
	if err != nil {
		return err
	}

	c.isManager = auth.IsManager(user.Roles)
	fmt.Fprintf(c.out, "Welcome, %s (%s)\n\n", user.Username, auth.PrimaryRole(user.Roles))

	c.loadSummary(ctx)
	if c.isManager {
		// The low-stock section is hidden for clerks.
		c.loadLowStock(ctx)
	}
	c.loadDailySales(ctx)
	c.loadTopProducts(ctx)
	return nil
}

// Watch runs a full load, then re-loads the summary, low-stock and daily
// sales widgets every refresh interval until the context is cancelled. The
// chart only redraws on a full load.
func (c *Controller) Watch(ctx context.Context) error {
	if err := c.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			fmt.Fprintf(c.out, "\n[refreshed %s]\n", time.Now().Format("15:04:05"))
			c.loadSummary(ctx)
			if c.isManager {
				c.loadLowStock(ctx)
			}
			c.loadDailySales(ctx)
		}
	}
}

// Widget loads ---------------------------------------------------------------

func (c *Controller) loadSummary(ctx context.Context) {
	token, err := c.store.Token()
	if err == nil {
		var summary api.DashboardSummary
		if summary, err = c.client.DashboardSummary(ctx, token); err == nil {
			fmt.Fprint(c.out, RenderSummary(summary))
			return
		}
	}
	log.Err(err).Msg("Summary load failed")
	fmt.Fprintln(c.out, "Error loading summary.")
}

func (c *Controller) loadLowStock(ctx context.Context) {
	token, err := c.store.Token()
	if err == nil {
		var alerts []api.LowStockAlert
		if alerts, err = c.client.LowStockAlerts(ctx, token); err == nil {
			fmt.Fprint(c.out, RenderLowStock(alerts))
			return
		}
	}
	log.Err(err).Msg("Low stock load failed")
	fmt.Fprintln(c.out, "Error loading alerts.")
}

func (c *Controller) loadDailySales(ctx context.Context) {
	token, err := c.store.Token()
	if err == nil {
		var summary *api.DailySalesSummary
		if summary, err = c.client.DailySales(ctx, token); err == nil {
			fmt.Fprint(c.out, RenderDailySales(summary))
			return
		}
	}
	log.Err(err).Msg("Daily sales load failed")
	fmt.Fprintln(c.out, "Error loading daily sales.")
}

func (c *Controller) loadTopProducts(ctx context.Context) {
	token, err := c.store.Token()
	if err == nil {
		var products []api.ProductPerformance
		if products, err = c.client.ProductPerformance(ctx, token); err == nil {
			// Dispose the previous chart instance before drawing a new one.
			if c.chart != nil {
				_ = c.chart.Close()
			}
			c.chart = NewBarChart(c.chartWidth)

			var rendered string
			if rendered, err = c.chart.Render(products); err == nil {
				fmt.Fprint(c.out, rendered)
				return
			}
		}
	}
	log.Err(err).Msg("Product performance load failed")
	fmt.Fprintln(c.out, "Error loading top products.")
}
