package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openshelf/go-inventory-console/api"
	apperrors "github.com/openshelf/go-inventory-console/internal/errors"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token-123"

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   []byte
}

// newBackend starts a fake backend that replies with status and body and
// records what it received.
func newBackend(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := map[string]string{}
		for key := range r.URL.Query() {
			query[key] = r.URL.Query().Get(key)
		}
		payload, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  query,
			Header: r.Header.Clone(),
			Body:   payload,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestLoginReturnsAccessToken(t *testing.T) {
	server, requests := newBackend(t, http.StatusOK, `{"access_token":"abc","token_type":"bearer"}`)
	client := api.NewClient(server.URL)

	token, err := client.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)
	require.Equal(t, "abc", token)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/auth/login", req.Path)
	require.Empty(t, req.Header.Get("Authorization"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(req.Body, &body))
	require.Equal(t, "alice", body["username"])
	require.Equal(t, "password123", body["password"])
}

func TestLoginSurfacesServerDetail(t *testing.T) {
	server, _ := newBackend(t, http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`)
	client := api.NewClient(server.URL)

	_, err := client.Login(context.Background(), "alice", "wrong")
	statusErr, ok := api.AsStatusError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.Equal(t, "Incorrect username or password", statusErr.Detail)
	require.True(t, apperrors.Is(err, apperrors.ErrRequestFailed))
}

func TestMeSendsBearerToken(t *testing.T) {
	server, requests := newBackend(t, http.StatusOK,
		`{"id":1,"username":"alice","email":"alice@example.com","is_active":true,"roles":"admin,manager"}`)
	client := api.NewClient(server.URL)

	user, err := client.Me(context.Background(), testToken)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "admin,manager", user.Roles)

	req := (*requests)[0]
	require.Equal(t, "Bearer "+testToken, req.Header.Get("Authorization"))
	require.Equal(t, "/auth/me", req.Path)
}

func TestMalformedResponseIsDistinctFromRequestFailure(t *testing.T) {
	server, _ := newBackend(t, http.StatusOK, `{"id": "not a number"`)
	client := api.NewClient(server.URL)

	_, err := client.Me(context.Background(), testToken)
	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrMalformedResponse))

	_, ok := api.AsStatusError(err)
	require.False(t, ok)
}

func TestMovementsQueryParameters(t *testing.T) {
	server, requests := newBackend(t, http.StatusOK, `[]`)
	client := api.NewClient(server.URL)

	movements, err := client.Movements(context.Background(), testToken, api.MovementFilter{
		ProductSKU: "SKU-001",
		Limit:      200,
	})
	require.NoError(t, err)
	require.Empty(t, movements)

	req := (*requests)[0]
	require.Equal(t, "/inventory/movements", req.Path)
	require.Equal(t, "200", req.Query["limit"])
	require.Equal(t, "SKU-001", req.Query["product_sku"])
}

func TestMovementsOmitsEmptySKUFilter(t *testing.T) {
	server, requests := newBackend(t, http.StatusOK, `[]`)
	client := api.NewClient(server.URL)

	_, err := client.Movements(context.Background(), testToken, api.MovementFilter{Limit: 50})
	require.NoError(t, err)

	req := (*requests)[0]
	_, filtered := req.Query["product_sku"]
	require.False(t, filtered)
}

func TestDailySalesNullBody(t *testing.T) {
	server, _ := newBackend(t, http.StatusOK, `null`)
	client := api.NewClient(server.URL)

	summary, err := client.DailySales(context.Background(), testToken)
	require.NoError(t, err)
	require.Nil(t, summary)
}

func TestGenerateSuggestionsSendsQueryParameters(t *testing.T) {
	server, requests := newBackend(t, http.StatusCreated, `{"message":"ok"}`)
	client := api.NewClient(server.URL)

	err := client.GenerateSuggestions(context.Background(), testToken, api.GenerationParams{
		LookbackDays:      30,
		ForecastDays:      7,
		SafetyStockFactor: 1.5,
	})
	require.NoError(t, err)

	req := (*requests)[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/replenishment/generate", req.Path)
	require.Equal(t, "30", req.Query["lookback_days"])
	require.Equal(t, "7", req.Query["forecast_days"])
	require.Equal(t, "1.5", req.Query["safety_stock_factor"])
}

func TestSuggestionActionBody(t *testing.T) {
	server, requests := newBackend(t, http.StatusOK, `{"message":"Suggestion ignored and removed"}`)
	client := api.NewClient(server.URL)

	err := client.SuggestionAction(context.Background(), testToken, 42, api.ActionIgnore)
	require.NoError(t, err)

	req := (*requests)[0]
	require.Equal(t, "/replenishment/actions", req.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	require.Equal(t, float64(42), body["suggestion_id"])
	require.Equal(t, "ignore", body["action"])
}

func TestSuggestionsDecodesDatesAndNullables(t *testing.T) {
	server, requests := newBackend(t, http.StatusOK, `[
		{"id":1,"product_sku":"SKU-001","product_name":"Beans","product_barcode":null,
		 "forecasted_demand":100,"current_stock":40,"suggested_quantity":60,
		 "date_generated":"2026-08-30","is_acted_upon":false,"acted_upon_at":null},
		{"id":2,"product_sku":"SKU-002","product_name":"Rice","product_barcode":"123",
		 "forecasted_demand":10,"current_stock":50,"suggested_quantity":5,
		 "date_generated":"2026-08-29","is_acted_upon":true,"acted_upon_at":"2026-08-30T10:15:00"}
	]`)
	client := api.NewClient(server.URL)

	suggestions, err := client.Suggestions(context.Background(), testToken, true, 100)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	require.Equal(t, "2026-08-30", suggestions[0].DateGenerated.Format("2006-01-02"))
	require.Empty(t, suggestions[0].ProductBarcode)
	require.Nil(t, suggestions[0].ActedUponAt)
	require.NotNil(t, suggestions[1].ActedUponAt)
	require.Equal(t, 10, suggestions[1].ActedUponAt.Hour())

	req := (*requests)[0]
	require.Equal(t, "true", req.Query["active_only"])
	require.Equal(t, "100", req.Query["limit"])
}

func TestErrorMessagePrefersServerDetail(t *testing.T) {
	server, _ := newBackend(t, http.StatusBadRequest, `{"detail":"Product not found"}`)
	client := api.NewClient(server.URL)

	_, err := client.StockLevel(context.Background(), testToken, "MISSING")
	require.Equal(t, "Product not found", api.ErrorMessage(err, "generic"))

	require.Equal(t, "generic", api.ErrorMessage(apperrors.ErrInternal, "generic"))
}
