package models

import "time"

// AssetClass names one aggregation bucket.
type AssetClass string

const (
	ClassEquity     AssetClass = "equity"
	ClassMutualFund AssetClass = "mutual_fund"
	ClassBank       AssetClass = "bank"
	ClassRetirement AssetClass = "retirement"
	ClassProvident  AssetClass = "provident"
	ClassPension    AssetClass = "pension"
)

// ClassResult is the common output of every asset-class aggregator.
type ClassResult struct {
	Class       AssetClass      `json:"class"`
	Invested    float64         `json:"invested"`
	MarketValue float64         `json:"market_value"`
	DayChange   float64         `json:"day_change"`
	Holdings    []Holding       `json:"holdings,omitempty"`
	Closed      []ClosedHolding `json:"closed,omitempty"`
}

// BankResult carries the month-over-month bank balance view.
type BankResult struct {
	ClassResult
	ByType     map[string]float64 `json:"by_type"`
	PrevByType map[string]float64 `json:"prev_by_type"`
	ByAccount  map[string]float64 `json:"by_account"`
	MonthDelta float64            `json:"month_delta"`
}

// RetirementAccount is the replayed balance of one retirement account.
type RetirementAccount struct {
	Account     string  `json:"account"`
	Invested    float64 `json:"invested"`
	MarketValue float64 `json:"market_value"`
}

// RetirementResult carries the running component sums of an
// employee-retirement fund.
type RetirementResult struct {
	ClassResult
	EmployeeShare float64             `json:"employee_share"`
	EmployerShare float64             `json:"employer_share"`
	PensionShare  float64             `json:"pension_share"`
	Interest      float64             `json:"interest"`
	Withdrawn     float64             `json:"withdrawn"`
	Accounts      []RetirementAccount `json:"accounts"`
}

// ProvidentAccount is the running balance of one provident-fund or
// fixed-deposit account.
type ProvidentAccount struct {
	Account   string  `json:"account"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// ProvidentResult carries per-account provident/FD balances.
type ProvidentResult struct {
	ClassResult
	Accounts []ProvidentAccount `json:"accounts"`
}

// AllocationRow is one asset-class line in the portfolio view.
type AllocationRow struct {
	Class          AssetClass `json:"class"`
	Invested       float64    `json:"invested"`
	MarketValue    float64    `json:"market_value"`
	DayChange      float64    `json:"day_change"`
	MarketValuePct float64    `json:"market_value_pct"` // share of total market value
	InvestedPct    float64    `json:"invested_pct"`     // share of total invested
}

// AccountBucket accumulates invested/market value for one asset class
// within an account summary.
type AccountBucket struct {
	Invested    float64 `json:"invested"`
	MarketValue float64 `json:"market_value"`
}

// AccountSummary aggregates all asset classes for one account.
type AccountSummary struct {
	Account       string                       `json:"account"`
	Buckets       map[AssetClass]AccountBucket `json:"buckets"`
	Invested      float64                      `json:"invested"`
	MarketValue   float64                      `json:"market_value"`
	Profit        float64                      `json:"profit"`
	ProfitPercent float64                      `json:"profit_percent"`
}

// PortfolioSummary is the merged cross-asset output.
type PortfolioSummary struct {
	Rows             []AllocationRow  `json:"rows"`
	Accounts         []AccountSummary `json:"accounts"`
	TotalInvested    float64          `json:"total_invested"`
	TotalMarketValue float64          `json:"total_market_value"`
	TotalDayChange   float64          `json:"total_day_change"`
	Profit           float64          `json:"profit"`
	ProfitPercent    float64          `json:"profit_percent"`
	Warnings         []string         `json:"warnings,omitempty"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// NotificationPayload is handed to the external delivery collaborator.
type NotificationPayload struct {
	ID    string            `json:"id"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Icon  string            `json:"icon"`
	Data  map[string]string `json:"data"`
}
