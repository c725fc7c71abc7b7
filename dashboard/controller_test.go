package dashboard_test

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/go-inventory-console/api"
	"github.com/openshelf/go-inventory-console/dashboard"
	apperrors "github.com/openshelf/go-inventory-console/internal/errors"
	"github.com/openshelf/go-inventory-console/session/storefake"
)

type fakeBackend struct {
	mu sync.Mutex

	summary     api.DashboardSummary
	summaryErr  error
	summaryHits int

	alerts    []api.LowStockAlert
	alertsErr error
	alertHits int

	daily     *api.DailySalesSummary
	dailyErr  error
	dailyHits int

	products    []api.ProductPerformance
	productsErr error
	productHits int
}

func (f *fakeBackend) DashboardSummary(_ context.Context, _ string) (api.DashboardSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaryHits++
	return f.summary, f.summaryErr
}

func (f *fakeBackend) LowStockAlerts(_ context.Context, _ string) ([]api.LowStockAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alertHits++
	return f.alerts, f.alertsErr
}

func (f *fakeBackend) DailySales(_ context.Context, _ string) (*api.DailySalesSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dailyHits++
	return f.daily, f.dailyErr
}

func (f *fakeBackend) ProductPerformance(_ context.Context, _ string) ([]api.ProductPerformance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productHits++
	return f.products, f.productsErr
}

type fakeGate struct {
	user *api.User
	err  error
}

func (f *fakeGate) CurrentUser(_ context.Context) (*api.User, error) {
	return f.user, f.err
}

func newDashboardController(t *testing.T, backend *fakeBackend, gate *fakeGate, out *bytes.Buffer, options ...dashboard.ControllerOption) *dashboard.Controller {
	t.Helper()
	controller, err := dashboard.NewController(backend, gate, storefake.NewStore("valid-token"), out, options...)
	require.NoError(t, err)
	return controller
}

func TestRunRendersAllWidgets(t *testing.T) {
	backend := &fakeBackend{
		summary:  api.DashboardSummary{TotalProducts: 10, TotalStockValue: decimal.RequireFromString("99.5")},
		alerts:   []api.LowStockAlert{{SKU: "SKU-001", Name: "Beans", QuantityInStock: 1, ReorderThreshold: 4}},
		products: performanceList("Beans"),
	}
	gate := &fakeGate{user: &api.User{Username: "mara", Roles: "manager"}}
	out := &bytes.Buffer{}

	require.NoError(t, newDashboardController(t, backend, gate, out).Run(context.Background()))

	rendered := out.String()
	require.Contains(t, rendered, "Welcome, mara (manager)")
	require.Contains(t, rendered, "Total Products: 10")
	require.Contains(t, rendered, "Low Stock Alerts")
	require.Contains(t, rendered, "Today's Sales")
	require.Contains(t, rendered, "Top Products")
}

func TestRunHidesLowStockForClerks(t *testing.T) {
	backend := &fakeBackend{}
	gate := &fakeGate{user: &api.User{Username: "carl", Roles: "clerk"}}
	out := &bytes.Buffer{}

	require.NoError(t, newDashboardController(t, backend, gate, out).Run(context.Background()))

	require.Zero(t, backend.alertHits)
	require.NotContains(t, out.String(), "Low Stock Alerts")
}

func TestRunStopsWhenGateRedirects(t *testing.T) {
	backend := &fakeBackend{}
	gate := &fakeGate{err: apperrors.ErrNoToken}
	out := &bytes.Buffer{}

	err := newDashboardController(t, backend, gate, out).Run(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNoToken)
	require.Zero(t, backend.summaryHits)
}

// A failed widget renders an inline error and leaves its siblings alone.
func TestWidgetFailureDoesNotAbortSiblings(t *testing.T) {
	backend := &fakeBackend{
		summaryErr: &api.StatusError{StatusCode: http.StatusInternalServerError},
		alerts:     nil,
		products:   performanceList("Beans"),
	}
	gate := &fakeGate{user: &api.User{Username: "mara", Roles: "manager"}}
	out := &bytes.Buffer{}

	require.NoError(t, newDashboardController(t, backend, gate, out).Run(context.Background()))

	rendered := out.String()
	require.Contains(t, rendered, "Error loading summary.")
	require.Contains(t, rendered, "All stock levels are healthy.")
	require.Contains(t, rendered, "Today's Sales")
	require.Contains(t, rendered, "Top Products")
	require.Equal(t, 1, backend.alertHits)
	require.Equal(t, 1, backend.productHits)
}

func TestWatchRefreshesWithoutChart(t *testing.T) {
	backend := &fakeBackend{products: performanceList("Beans")}
	gate := &fakeGate{user: &api.User{Username: "mara", Roles: "manager"}}
	out := &bytes.Buffer{}
	controller := newDashboardController(t, backend, gate, out,
		dashboard.WithRefreshInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := controller.Watch(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.GreaterOrEqual(t, backend.summaryHits, 2)
	require.GreaterOrEqual(t, backend.alertHits, 2)
	require.GreaterOrEqual(t, backend.dailyHits, 2)
	// The chart is excluded from periodic refresh.
	require.Equal(t, 1, backend.productHits)
}
