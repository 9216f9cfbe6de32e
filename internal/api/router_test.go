package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"xyzbank/internal/api/handler/dto"
	"xyzbank/internal/config"
	"xyzbank/internal/domain/registry"
	"xyzbank/internal/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, maxRecords int, auth config.AuthConfig) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := registry.NewRegistryService(config.RegistryConfig{MaxRecords: maxRecords}, event.NewLogEventPublisher(logger), logger)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			RateLimit: config.RateLimitConfig{Enabled: false},
			Auth:      auth,
		},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv := httptest.NewServer(SetupRouter(ctx, svc, cfg, nil, logger))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body, token string) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_LoanLifecycle(t *testing.T) {
	srv := newTestServer(t, 1, config.AuthConfig{})

	resp := do(t, http.MethodPost, srv.URL+"/customers", `{"customerId":"abc123","annualIncome":"60000"}`, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/customers/ABC123/loans",
		`{"recordId":"000001","loanType":"Auto","interestRate":"5","amountLeft":"10000","loanTermLeft":12}`, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/customers/ABC123/loans",
		`{"recordId":"000002","loanType":"Auto","interestRate":"5","amountLeft":"10000","loanTermLeft":12}`, "")
	assert.Equal(t, http.StatusInsufficientStorage, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/registry", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.RegistryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, dto.RegistryResponse{MaxRecords: 1, RecordCount: 1, AvailableRecords: 0, Customers: 1}, summary)

	resp = do(t, http.MethodDelete, srv.URL+"/customers/ABC123/loans/000001", "", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/customers/ABC123/loans/000001", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/customers/ABC123", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view dto.CustomerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "ABC123", view.CustomerID)
	assert.Equal(t, 0, view.LoanCount)
	assert.True(t, view.Eligible)
}

func TestRouter_OutOfRangeAmountsRejected(t *testing.T) {
	srv := newTestServer(t, 5, config.AuthConfig{})

	resp := do(t, http.MethodPost, srv.URL+"/customers", `{"customerId":"ABC123","annualIncome":"1e400"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/customers", `{"customerId":"ABC123","annualIncome":"60000"}`, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, body := range []string{
		`{"recordId":"000001","loanType":"Auto","interestRate":"5","amountLeft":"1e400","loanTermLeft":12}`,
		`{"recordId":"000001","loanType":"Auto","interestRate":"1e400","amountLeft":"1000","loanTermLeft":12}`,
		`{"recordId":"000001","loanType":"Mortgage","interestRate":"5","amountLeft":"1000","loanTermLeft":12,"overpayment":"1e400"}`,
		`{"recordId":"000001","loanType":"Auto","interestRate":"NaN","amountLeft":"1000","loanTermLeft":12}`,
	} {
		resp = do(t, http.MethodPost, srv.URL+"/customers/ABC123/loans", body, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}

	resp = do(t, http.MethodPut, srv.URL+"/customers/ABC123/income", `{"annualIncome":"1e400"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/registry", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.RegistryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 0, summary.RecordCount)
	assert.Equal(t, 1, summary.Customers)
}

func TestRouter_AuthRequired(t *testing.T) {
	srv := newTestServer(t, 5, config.AuthConfig{Enabled: true, JWTSecret: "router-secret"})

	resp := do(t, http.MethodGet, srv.URL+"/customers", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/auth/token", `{"username":"teller"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))

	resp = do(t, http.MethodGet, srv.URL+"/customers", "", tok["token"])
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	srv := newTestServer(t, 5, config.AuthConfig{})

	resp := do(t, http.MethodGet, srv.URL+"/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp = do(t, http.MethodGet, srv.URL+"/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "xyzbank_registry_record_capacity")

	resp = do(t, http.MethodGet, srv.URL+"/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/customers/{customerID}/loans")
}
