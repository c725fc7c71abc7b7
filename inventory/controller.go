// Package inventory drives the inventory page's three mutually exclusive
// views: the stock receipt form, the adjustment form and the movement
// history list. The console shows exactly one view per invocation.
package inventory

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
	"github.com/openshelf/go-inventory-console/internal/utils"
	"github.com/openshelf/go-inventory-console/session"
)

const historyLimit = 200

const genericFailureMessage = "Network error. Please try again."

// movementTypes accepted by the adjustment form.
var movementTypes = map[string]bool{
	"adjustment": true,
	"damage":     true,
	"return":     true,
}

// BackendClient is the slice of the backend API the inventory page needs.
type BackendClient interface {
	SubmitReceipt(ctx context.Context, token string, receipt api.ReceiptRequest) (api.Movement, error)
	SubmitAdjustment(ctx context.Context, token string, adjustment api.AdjustmentRequest) (api.Movement, error)
	Movements(ctx context.Context, token string, filter api.MovementFilter) ([]api.Movement, error)
	StockLevel(ctx context.Context, token, sku string) (api.StockLevel, error)
}

// SessionGate restricts the page to stock-managing roles.
type SessionGate interface {
	ResolveSession(ctx context.Context, allowedRoles []string) (*api.User, error)
}

// ReceiptInput carries the raw receipt form fields before validation.
type ReceiptInput struct {
	SKU         string
	Quantity    string
	ReferenceID string
}

// AdjustmentInput carries the raw adjustment form fields before validation.
type AdjustmentInput struct {
	SKU          string
	MovementType string
	Quantity     string
	Reason       string
}

// Controller orchestrates the inventory views.
type Controller struct {
	client BackendClient
	gate   SessionGate
	store  session.Store
	out    io.Writer
}

// NewController initializes the inventory page controller.
func NewController(client BackendClient, gate SessionGate, store session.Store, out io.Writer) (*Controller, error) {
	if client == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] backend client is required")
	}
	if gate == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] session gate is required")
	}
	if store == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInternal, "[NewController] session store is required")
	}
	return &Controller{client: client, gate: gate, store: store, out: out}, nil
}

// SubmitReceipt validates and submits the stock receipt form.
func (c *Controller) SubmitReceipt(ctx context.Context, input ReceiptInput) error {
	if _, err := c.gate.ResolveSession(ctx, auth.ManagerRoles); err != nil {
		return err
	}

	receipt, err := input.parse()
	if err != nil {
		fmt.Fprintln(c.out, err.Error())
		return err
	}

	token, err := c.store.Token()
	if err != nil {
		return err
	}
	movement, err := c.client.SubmitReceipt(ctx, token, receipt)
	if err != nil {
		log.Err(err).Str("sku", receipt.ProductSKU).Msg("Receipt failed")
		fmt.Fprintln(c.out, api.ErrorMessage(err, genericFailureMessage))
		return err
	}

	fmt.Fprintf(c.out, "Stock received. New quantity: %d\n", movement.NewQuantity)
	return nil
}

// SubmitAdjustment validates and submits the stock adjustment form.
func (c *Controller) SubmitAdjustment(ctx context.Context, input AdjustmentInput) error {
	if _, err := c.gate.ResolveSession(ctx, auth.ManagerRoles); err != nil {
		return err
	}

	adjustment, err := input.parse()
	if err != nil {
		fmt.Fprintln(c.out, err.Error())
		return err
	}

	token, err := c.store.Token()
	if err != nil {
		return err
	}
	movement, err := c.client.SubmitAdjustment(ctx, token, adjustment)
	if err != nil {
		log.Err(err).Str("sku", adjustment.ProductSKU).Msg("Adjustment failed")
		fmt.Fprintln(c.out, api.ErrorMessage(err, genericFailureMessage))
		return err
	}

	fmt.Fprintf(c.out, "Adjustment recorded. New quantity: %d\n", movement.NewQuantity)
	return nil
}

// ShowHistory loads and renders the movement list, optionally filtered by SKU
// server-side. Opening the history view always reloads the list.
func (c *Controller) ShowHistory(ctx context.Context, skuFilter string) error {
	if _, err := c.gate.ResolveSession(ctx, auth.ManagerRoles); err != nil {
		return err
	}

	token, err := c.store.Token()
	if err != nil {
		return err
	}
	movements, err := c.client.Movements(ctx, token, api.MovementFilter{
		ProductSKU: strings.TrimSpace(skuFilter),
		Limit:      historyLimit,
	})
	if err != nil {
		log.Err(err).Msg("Movement history load failed")
		fmt.Fprintln(c.out, "Error loading movements.")
		return err
	}

	fmt.Fprint(c.out, RenderMovements(movements))
	return nil
}

// ShowStockLevel renders the current stock level for one SKU.
func (c *Controller) ShowStockLevel(ctx context.Context, sku string) error {
	if _, err := c.gate.ResolveSession(ctx, auth.ManagerRoles); err != nil {
		return err
	}

	sku = strings.TrimSpace(sku)
	if sku == "" {
		err := apperrors.Wrapf(apperrors.ErrInvalidInput, "SKU is required")
		fmt.Fprintln(c.out, err.Error())
		return err
	}

	token, err := c.store.Token()
	if err != nil {
		return err
	}
	level, err := c.client.StockLevel(ctx, token, sku)
	if err != nil {
		fmt.Fprintln(c.out, api.ErrorMessage(err, genericFailureMessage))
		return err
	}

	fmt.Fprint(c.out, RenderStockLevel(level))
	return nil
}

// Form parsing ---------------------------------------------------------------

func (input ReceiptInput) parse() (api.ReceiptRequest, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return api.ReceiptRequest{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "SKU is required")
	}
	quantity, err := parseQuantity(input.Quantity)
	if err != nil {
		return api.ReceiptRequest{}, err
	}

	receipt := api.ReceiptRequest{ProductSKU: sku, Quantity: quantity}
	if reference := strings.TrimSpace(input.ReferenceID); reference != "" {
		receipt.ReferenceID = utils.Ptr(reference)
	}
	return receipt, nil
}

func (input AdjustmentInput) parse() (api.AdjustmentRequest, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return api.AdjustmentRequest{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "SKU is required")
	}
	movementType := strings.TrimSpace(input.MovementType)
	if !movementTypes[movementType] {
		return api.AdjustmentRequest{}, apperrors.Wrapf(apperrors.ErrInvalidInput,
			"movement type must be one of adjustment, damage, return")
	}
	quantity, err := parseQuantity(input.Quantity)
	if err != nil {
		return api.AdjustmentRequest{}, err
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return api.AdjustmentRequest{}, apperrors.Wrapf(apperrors.ErrInvalidInput, "reason is required")
	}

	return api.AdjustmentRequest{
		ProductSKU:   sku,
		MovementType: movementType,
		Quantity:     quantity,
		Reason:       reason,
	}, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || quantity <= 0 {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidInput, "quantity must be a positive integer")
	}
	return quantity, nil
}
