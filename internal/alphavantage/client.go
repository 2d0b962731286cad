package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/valuelens/internal/common"
	"github.com/ternarybob/valuelens/internal/interfaces"
	"github.com/ternarybob/valuelens/internal/models"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the Alpha Vantage API.
	DefaultBaseURL = "https://www.alphavantage.co"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerMinute matches the free tier.
	DefaultRequestsPerMinute = 5
)

// Client is an Alpha Vantage API client.
type Client struct {
	apiKey  string
	http    *resty.Client
	logger  arbor.ILogger
	limiter *rate.Limiter
}

var _ interfaces.FundamentalsProvider = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.http.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the request budget per minute.
func WithRateLimit(requestsPerMinute int) ClientOption {
	return func(c *Client) {
		if requestsPerMinute <= 0 {
			requestsPerMinute = DefaultRequestsPerMinute
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}
}

// NewClient creates a new Alpha Vantage API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey: apiKey,
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(DefaultTimeout).
			SetHeader("Accept", "application/json"),
	}
	WithRateLimit(DefaultRequestsPerMinute)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewClientFromConfig creates a client from the [alphavantage] config section
func NewClientFromConfig(config *common.AlphaVantageConfig, logger arbor.ILogger) (*Client, error) {
	apiKey, err := common.ResolveAPIKey("alphavantage", config.APIKey, "ALPHAVANTAGE_API_KEY", common.EnvPrefix+"ALPHAVANTAGE_API_KEY")
	if err != nil {
		return nil, err
	}

	return NewClient(apiKey,
		WithBaseURL(config.BaseURL),
		WithTimeout(config.TimeoutDuration()),
		WithRateLimit(config.RequestsPerMinute),
		WithLogger(logger),
	), nil
}

// query calls /query with the given function and parameters and decodes the body into result.
func (c *Client) query(ctx context.Context, function string, params map[string]string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", function, err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("function", function).
			Str("symbol", params["symbol"]).
			Msg("Alpha Vantage API request")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("function", function).
		SetQueryParam("apikey", c.apiKey).
		Get("/query")
	if err != nil {
		return fmt.Errorf("failed to execute %s request: %w", function, err)
	}

	body := resp.Body()

	if resp.StatusCode() == http.StatusTooManyRequests {
		return &RateLimitError{Message: strings.TrimSpace(string(body)), RetryAfter: time.Minute}
	}
	if resp.StatusCode() != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Message:    strings.TrimSpace(string(body)),
			Function:   function,
		}
	}

	if err := checkEnvelope(body, function); err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", function, err)
	}

	return nil
}

// checkEnvelope maps the in-body Note / Information / Error Message fields to typed errors
func checkEnvelope(body []byte, function string) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Not an object (or not JSON); let the caller's decode report it
		return nil
	}

	switch {
	case env.ErrorMessage != "":
		return &APIError{StatusCode: http.StatusOK, Message: env.ErrorMessage, Function: function}
	case env.Note != "":
		return &RateLimitError{Message: env.Note, RetryAfter: time.Minute}
	case env.Information != "":
		if isRateLimitMessage(env.Information) {
			return &RateLimitError{Message: env.Information, RetryAfter: time.Minute}
		}
		return &APIError{StatusCode: http.StatusOK, Message: env.Information, Function: function}
	}
	return nil
}

func isRateLimitMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "requests per") ||
		strings.Contains(lower, "call frequency")
}

// SearchSymbol returns the best matches for keywords
func (c *Client) SearchSymbol(ctx context.Context, keywords string) ([]models.SymbolMatch, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, fmt.Errorf("search keywords are required")
	}

	var resp searchResponse
	if err := c.query(ctx, "SYMBOL_SEARCH", map[string]string{"keywords": keywords}, &resp); err != nil {
		return nil, err
	}
	return toSymbolMatches(resp), nil
}

// GetOverview returns company metadata and headline ratios
func (c *Client) GetOverview(ctx context.Context, symbol string) (*models.Overview, error) {
	var resp overviewRecord
	if err := c.query(ctx, "OVERVIEW", map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, err
	}
	if resp.Symbol == "" {
		return nil, fmt.Errorf("overview for %s: %w", symbol, ErrNoData)
	}
	return toOverview(resp), nil
}

// GetIncomeStatements returns annual then quarterly income statements, each newest-first
func (c *Client) GetIncomeStatements(ctx context.Context, symbol string) ([]models.IncomeStatement, error) {
	var resp reportsResponse[incomeRecord]
	if err := c.query(ctx, "INCOME_STATEMENT", map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, err
	}
	return flatten(resp, toIncomeStatement), nil
}

// GetBalanceSheets returns annual then quarterly balance sheets, each newest-first
func (c *Client) GetBalanceSheets(ctx context.Context, symbol string) ([]models.BalanceSheet, error) {
	var resp reportsResponse[balanceRecord]
	if err := c.query(ctx, "BALANCE_SHEET", map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, err
	}
	return flatten(resp, toBalanceSheet), nil
}

// GetCashFlows returns annual then quarterly cash flow statements, each newest-first.
// Capital expenditures are negated to outflows.
func (c *Client) GetCashFlows(ctx context.Context, symbol string) ([]models.CashFlow, error) {
	var resp reportsResponse[cashFlowRecord]
	if err := c.query(ctx, "CASH_FLOW", map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, err
	}
	return flatten(resp, toCashFlow), nil
}
