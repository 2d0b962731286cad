package models

// Overview is a single snapshot of company metadata and headline ratios
type Overview struct {
	Symbol                     string `json:"symbol" yaml:"symbol"`
	AssetType                  string `json:"asset_type,omitempty" yaml:"asset_type,omitempty"`
	Name                       string `json:"name" yaml:"name"`
	Description                string `json:"description,omitempty" yaml:"description,omitempty"`
	CIK                        string `json:"cik,omitempty" yaml:"cik,omitempty"`
	Exchange                   string `json:"exchange,omitempty" yaml:"exchange,omitempty"`
	Currency                   string `json:"currency,omitempty" yaml:"currency,omitempty"`
	Country                    string `json:"country,omitempty" yaml:"country,omitempty"`
	Sector                     string `json:"sector,omitempty" yaml:"sector,omitempty"`
	Industry                   string `json:"industry,omitempty" yaml:"industry,omitempty"`
	Address                    string `json:"address,omitempty" yaml:"address,omitempty"`
	OfficialSite               string `json:"official_site,omitempty" yaml:"official_site,omitempty"`
	FiscalYearEnd              string `json:"fiscal_year_end,omitempty" yaml:"fiscal_year_end,omitempty"`
	LatestQuarter              string `json:"latest_quarter,omitempty" yaml:"latest_quarter,omitempty"`
	MarketCapitalization       Amount `json:"market_capitalization" yaml:"market_capitalization"`
	EBITDA                     Amount `json:"ebitda" yaml:"ebitda"`
	PERatio                    Amount `json:"pe_ratio" yaml:"pe_ratio"`
	PEGRatio                   Amount `json:"peg_ratio" yaml:"peg_ratio"`
	BookValue                  Amount `json:"book_value" yaml:"book_value"`
	DividendPerShare           Amount `json:"dividend_per_share" yaml:"dividend_per_share"`
	DividendYield              Amount `json:"dividend_yield" yaml:"dividend_yield"`
	EPS                        Amount `json:"eps" yaml:"eps"`
	RevenuePerShareTTM         Amount `json:"revenue_per_share_ttm" yaml:"revenue_per_share_ttm"`
	ProfitMargin               Amount `json:"profit_margin" yaml:"profit_margin"`
	OperatingMarginTTM         Amount `json:"operating_margin_ttm" yaml:"operating_margin_ttm"`
	ReturnOnAssetsTTM          Amount `json:"return_on_assets_ttm" yaml:"return_on_assets_ttm"`
	ReturnOnEquityTTM          Amount `json:"return_on_equity_ttm" yaml:"return_on_equity_ttm"`
	RevenueTTM                 Amount `json:"revenue_ttm" yaml:"revenue_ttm"`
	GrossProfitTTM             Amount `json:"gross_profit_ttm" yaml:"gross_profit_ttm"`
	DilutedEPSTTM              Amount `json:"diluted_eps_ttm" yaml:"diluted_eps_ttm"`
	QuarterlyEarningsGrowthYOY Amount `json:"quarterly_earnings_growth_yoy" yaml:"quarterly_earnings_growth_yoy"`
	QuarterlyRevenueGrowthYOY  Amount `json:"quarterly_revenue_growth_yoy" yaml:"quarterly_revenue_growth_yoy"`
	AnalystTargetPrice         Amount `json:"analyst_target_price" yaml:"analyst_target_price"`
	TrailingPE                 Amount `json:"trailing_pe" yaml:"trailing_pe"`
	ForwardPE                  Amount `json:"forward_pe" yaml:"forward_pe"`
	PriceToSalesRatioTTM       Amount `json:"price_to_sales_ratio_ttm" yaml:"price_to_sales_ratio_ttm"`
	PriceToBookRatio           Amount `json:"price_to_book_ratio" yaml:"price_to_book_ratio"`
	EVToRevenue                Amount `json:"ev_to_revenue" yaml:"ev_to_revenue"`
	EVToEBITDA                 Amount `json:"ev_to_ebitda" yaml:"ev_to_ebitda"`
	Beta                       Amount `json:"beta" yaml:"beta"`
	Week52High                 Amount `json:"week_52_high" yaml:"week_52_high"`
	Week52Low                  Amount `json:"week_52_low" yaml:"week_52_low"`
	MovingAverage50Day         Amount `json:"moving_average_50_day" yaml:"moving_average_50_day"`
	MovingAverage200Day        Amount `json:"moving_average_200_day" yaml:"moving_average_200_day"`
	SharesOutstanding          Amount `json:"shares_outstanding" yaml:"shares_outstanding"`
	PercentInsiders            Amount `json:"percent_insiders" yaml:"percent_insiders"`
	PercentInstitutions        Amount `json:"percent_institutions" yaml:"percent_institutions"`
	DividendDate               string `json:"dividend_date,omitempty" yaml:"dividend_date,omitempty"`
	ExDividendDate             string `json:"ex_dividend_date,omitempty" yaml:"ex_dividend_date,omitempty"`
}
