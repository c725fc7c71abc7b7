package api

import "github.com/shopspring/decimal"

// User is the identity returned by GET /auth/me. Roles is a comma-separated
// role string (e.g. "admin,manager"), exactly as the backend stores it.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
	Roles    string `json:"roles"`
}

// TokenResponse is the reply from POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DashboardSummary aggregates the headline dashboard metrics.
type DashboardSummary struct {
	TotalProducts   int                `json:"total_products"`
	TotalStockValue decimal.Decimal    `json:"total_stock_value"`
	LowStockCount   int                `json:"low_stock_count"`
	OutOfStockCount int                `json:"out_of_stock_count"`
	TodaySales      *DailySalesSummary `json:"today_sales"`
}

// LowStockAlert is one product at or under its reorder threshold.
type LowStockAlert struct {
	SKU              string `json:"sku"`
	Name             string `json:"name"`
	QuantityInStock  int    `json:"quantity_in_stock"`
	ReorderThreshold int    `json:"reorder_threshold"`
	AlertMessage     string `json:"alert_message"`
}

// DailySalesSummary is the rollup of one day's sale transactions. The endpoint
// returns null for days with no sales, so it travels as a pointer.
type DailySalesSummary struct {
	TransactionDate    Date            `json:"transaction_date"`
	TransactionCount   int             `json:"transaction_count"`
	UniqueProductsSold int             `json:"unique_products_sold"`
	TotalItemsSold     int             `json:"total_items_sold"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
}

// ProductPerformance carries 30-day sale counts per product, sorted
// best-sellers first by the backend.
type ProductPerformance struct {
	SKU             string  `json:"sku"`
	Name            string  `json:"name"`
	CategoryName    string  `json:"category_name"`
	QuantityInStock int     `json:"quantity_in_stock"`
	TotalSold30d    int     `json:"total_sold_30d"`
	AvgDailySales   float64 `json:"avg_daily_sales"`
	Status          string  `json:"status"`
}

// ReceiptRequest is the body of POST /inventory/receipt.
type ReceiptRequest struct {
	ProductSKU  string  `json:"product_sku"`
	Quantity    int     `json:"quantity"`
	ReferenceID *string `json:"reference_id"`
}

// AdjustmentRequest is the body of POST /inventory/adjust.
type AdjustmentRequest struct {
	ProductSKU   string `json:"product_sku"`
	MovementType string `json:"movement_type"`
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason"`
}

// Movement is a single recorded stock change. The frontend only ever reads
// these; quantity is always the raw positive amount, with direction implied by
// the movement type.
type Movement struct {
	ID               int64    `json:"id"`
	ProductName      string   `json:"product_name"`
	ProductSKU       string   `json:"product_sku"`
	MovementType     string   `json:"movement_type"`
	Quantity         int      `json:"quantity"`
	PreviousQuantity int      `json:"previous_quantity"`
	NewQuantity      int      `json:"new_quantity"`
	ReferenceID      string   `json:"reference_id"`
	Reason           string   `json:"reason"`
	PerformedBy      string   `json:"performed_by"`
	CreatedAt        DateTime `json:"created_at"`
}

// MovementFilter narrows GET /inventory/movements.
type MovementFilter struct {
	ProductSKU string
	Limit      int
}

// StockLevel is the reply from GET /inventory/stock/{sku}.
type StockLevel struct {
	SKU              string `json:"sku"`
	Name             string `json:"name"`
	QuantityInStock  int    `json:"quantity_in_stock"`
	ReorderThreshold int    `json:"reorder_threshold"`
	Status           string `json:"status"`
}

// Suggestion is one replenishment suggestion. Accept/ignore mutate it
// server-side only; the console always re-fetches rather than patching.
type Suggestion struct {
	ID                int64     `json:"id"`
	ProductSKU        string    `json:"product_sku"`
	ProductName       string    `json:"product_name"`
	ProductBarcode    string    `json:"product_barcode"`
	ForecastedDemand  int       `json:"forecasted_demand"`
	CurrentStock      int       `json:"current_stock"`
	SuggestedQuantity int       `json:"suggested_quantity"`
	DateGenerated     Date      `json:"date_generated"`
	IsActedUpon       bool      `json:"is_acted_upon"`
	ActedUponAt       *DateTime `json:"acted_upon_at"`
}

// GenerationParams tune the suggestion generator. Zero values are filled with
// the backend defaults by the replenishment controller before the call.
type GenerationParams struct {
	LookbackDays      int
	ForecastDays      int
	SafetyStockFactor float64
}

// SuggestionAction values accepted by POST /replenishment/actions.
const (
	ActionAccept = "accept"
	ActionIgnore = "ignore"
)

type suggestionActionRequest struct {
	SuggestionID int64  `json:"suggestion_id"`
	Action       string `json:"action"`
}
