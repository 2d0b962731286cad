// Package alphavantage provides a client for the Alpha Vantage fundamental data API.
package alphavantage

import (
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/valuelens/internal/models"
)

// ErrNoData is returned when the API answers successfully but has nothing for the symbol
var ErrNoData = errors.New("no data returned")

// APIError represents an error from the Alpha Vantage API.
// Alpha Vantage reports most errors inside HTTP 200 bodies, so StatusCode is often 200.
type APIError struct {
	StatusCode int
	Message    string
	Function   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, function: %s)", e.Message, e.StatusCode, e.Function)
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Alpha Vantage rate limit exceeded, retry after %v", e.RetryAfter)
	}
	return fmt.Sprintf("Alpha Vantage rate limit exceeded, retry after %v: %s", e.RetryAfter, e.Message)
}

// envelope holds the in-body error fields Alpha Vantage may return instead of data
type envelope struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// reportsResponse is the shape shared by INCOME_STATEMENT, BALANCE_SHEET and CASH_FLOW
type reportsResponse[T any] struct {
	Symbol           string `json:"symbol"`
	AnnualReports    []T    `json:"annualReports"`
	QuarterlyReports []T    `json:"quarterlyReports"`
}

type incomeRecord struct {
	FiscalDateEnding       string        `json:"fiscalDateEnding"`
	ReportedCurrency       string        `json:"reportedCurrency"`
	TotalRevenue           models.Amount `json:"totalRevenue"`
	GrossProfit            models.Amount `json:"grossProfit"`
	OperatingIncome        models.Amount `json:"operatingIncome"`
	NetIncome              models.Amount `json:"netIncome"`
	ResearchAndDevelopment models.Amount `json:"researchAndDevelopment"`
	EBITDA                 models.Amount `json:"ebitda"`
}

type balanceRecord struct {
	FiscalDateEnding                      string        `json:"fiscalDateEnding"`
	ReportedCurrency                      string        `json:"reportedCurrency"`
	TotalAssets                           models.Amount `json:"totalAssets"`
	TotalShareholderEquity                models.Amount `json:"totalShareholderEquity"`
	ShortLongTermDebtTotal                models.Amount `json:"shortLongTermDebtTotal"`
	CashAndCashEquivalentsAtCarryingValue models.Amount `json:"cashAndCashEquivalentsAtCarryingValue"`
	CommonStockSharesOutstanding          models.Amount `json:"commonStockSharesOutstanding"`
	Goodwill                              models.Amount `json:"goodwill"`
	IntangibleAssets                      models.Amount `json:"intangibleAssets"`
}

type cashFlowRecord struct {
	FiscalDateEnding    string        `json:"fiscalDateEnding"`
	ReportedCurrency    string        `json:"reportedCurrency"`
	OperatingCashflow   models.Amount `json:"operatingCashflow"`
	CapitalExpenditures models.Amount `json:"capitalExpenditures"`
}

type searchResponse struct {
	BestMatches []struct {
		Symbol      string `json:"1. symbol"`
		Name        string `json:"2. name"`
		Type        string `json:"3. type"`
		Region      string `json:"4. region"`
		MarketOpen  string `json:"5. marketOpen"`
		MarketClose string `json:"6. marketClose"`
		Timezone    string `json:"7. timezone"`
		Currency    string `json:"8. currency"`
		MatchScore  string `json:"9. matchScore"`
	} `json:"bestMatches"`
}

type overviewRecord struct {
	Symbol                     string        `json:"Symbol"`
	AssetType                  string        `json:"AssetType"`
	Name                       string        `json:"Name"`
	Description                string        `json:"Description"`
	CIK                        string        `json:"CIK"`
	Exchange                   string        `json:"Exchange"`
	Currency                   string        `json:"Currency"`
	Country                    string        `json:"Country"`
	Sector                     string        `json:"Sector"`
	Industry                   string        `json:"Industry"`
	Address                    string        `json:"Address"`
	OfficialSite               string        `json:"OfficialSite"`
	FiscalYearEnd              string        `json:"FiscalYearEnd"`
	LatestQuarter              string        `json:"LatestQuarter"`
	MarketCapitalization       models.Amount `json:"MarketCapitalization"`
	EBITDA                     models.Amount `json:"EBITDA"`
	PERatio                    models.Amount `json:"PERatio"`
	PEGRatio                   models.Amount `json:"PEGRatio"`
	BookValue                  models.Amount `json:"BookValue"`
	DividendPerShare           models.Amount `json:"DividendPerShare"`
	DividendYield              models.Amount `json:"DividendYield"`
	EPS                        models.Amount `json:"EPS"`
	RevenuePerShareTTM         models.Amount `json:"RevenuePerShareTTM"`
	ProfitMargin               models.Amount `json:"ProfitMargin"`
	OperatingMarginTTM         models.Amount `json:"OperatingMarginTTM"`
	ReturnOnAssetsTTM          models.Amount `json:"ReturnOnAssetsTTM"`
	ReturnOnEquityTTM          models.Amount `json:"ReturnOnEquityTTM"`
	RevenueTTM                 models.Amount `json:"RevenueTTM"`
	GrossProfitTTM             models.Amount `json:"GrossProfitTTM"`
	DilutedEPSTTM              models.Amount `json:"DilutedEPSTTM"`
	QuarterlyEarningsGrowthYOY models.Amount `json:"QuarterlyEarningsGrowthYOY"`
	QuarterlyRevenueGrowthYOY  models.Amount `json:"QuarterlyRevenueGrowthYOY"`
	AnalystTargetPrice         models.Amount `json:"AnalystTargetPrice"`
	TrailingPE                 models.Amount `json:"TrailingPE"`
	ForwardPE                  models.Amount `json:"ForwardPE"`
	PriceToSalesRatioTTM       models.Amount `json:"PriceToSalesRatioTTM"`
	PriceToBookRatio           models.Amount `json:"PriceToBookRatio"`
	EVToRevenue                models.Amount `json:"EVToRevenue"`
	EVToEBITDA                 models.Amount `json:"EVToEBITDA"`
	Beta                       models.Amount `json:"Beta"`
	Week52High                 models.Amount `json:"52WeekHigh"`
	Week52Low                  models.Amount `json:"52WeekLow"`
	MovingAverage50Day         models.Amount `json:"50DayMovingAverage"`
	MovingAverage200Day        models.Amount `json:"200DayMovingAverage"`
	SharesOutstanding          models.Amount `json:"SharesOutstanding"`
	PercentInsiders            models.Amount `json:"PercentInsiders"`
	PercentInstitutions        models.Amount `json:"PercentInstitutions"`
	DividendDate               string        `json:"DividendDate"`
	ExDividendDate             string        `json:"ExDividendDate"`
}
