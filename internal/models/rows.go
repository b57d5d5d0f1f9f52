package models

import "time"

// Raw collaborator rows. These mirror the shapes handed over by the
// data-fetch boundary; dates arrive as strings in assorted layouts and
// are parsed during normalization.

// EquityTradeRow is one tradebook record for a stock or ETF position.
// Rows for closed positions carry both buy and sell prices; an empty
// SellDate marks the position (or remainder) as still open.
type EquityTradeRow struct {
	ID          string  `json:"id"`
	Symbol      string  `json:"symbol"`
	Account     string  `json:"account"`
	AccountType string  `json:"account_type"` // "equity" or "etf"
	Quantity    float64 `json:"quantity"`
	BuyPrice    float64 `json:"buy_price"`
	SellPrice   float64 `json:"sell_price"`
	Charges     float64 `json:"charges"`
	BuyDate     string  `json:"buy_date"`
	SellDate    string  `json:"sell_date"`
}

// FundTransactionRow is one mutual-fund (or scheme-based fund)
// transaction with a free-text type classified at ingestion.
type FundTransactionRow struct {
	ID      string  `json:"id"`
	Scheme  string  `json:"scheme"`
	Account string  `json:"account"`
	Type    string  `json:"type"` // free text: "SIP", "Switch-In", "Redeem", ...
	Units   float64 `json:"units"`
	NAV     float64 `json:"nav"`
	Date    string  `json:"date"`
}

// InstrumentQuote carries current and previous-close prices for one
// instrument or scheme, plus classification metadata.
type InstrumentQuote struct {
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousClose float64 `json:"previous_close"`
	Category      string  `json:"category,omitempty"`
	Sector        string  `json:"sector,omitempty"`
}

// ChargesRow carries yearly account-level charges not captured on
// individual transactions.
type ChargesRow struct {
	Account      string  `json:"account"`
	Year         int     `json:"year"`
	OtherCharges float64 `json:"other_charges"`
	DPCharges    float64 `json:"dp_charges"`
}

// BankBalanceRow is one balance observation for a bank account.
type BankBalanceRow struct {
	Account     string  `json:"account"`
	Institution string  `json:"institution"`
	Type        string  `json:"type"` // "savings", "current", "deposit", ...
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

// RetirementContributionRow is one employee-retirement-fund entry:
// contribution components, credited interest, or a withdrawal.
type RetirementContributionRow struct {
	Account       string  `json:"account"`
	EmployeeShare float64 `json:"employee_share"`
	EmployerShare float64 `json:"employer_share"`
	PensionShare  float64 `json:"pension_share"`
	Interest      float64 `json:"interest"`
	Withdrawal    float64 `json:"withdrawal"`
	Date          string  `json:"date"`
}

// ProvidentEntryRow is one provident-fund or fixed-deposit entry.
type ProvidentEntryRow struct {
	Account string  `json:"account"`
	Kind    string  `json:"kind"` // "deposit", "interest", "withdrawal", "maturity"
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
}

// PensionUnitsRow is one pension-scheme unit transaction.
type PensionUnitsRow struct {
	ID      string  `json:"id"`
	Scheme  string  `json:"scheme"`
	Account string  `json:"account"`
	Type    string  `json:"type"`
	Units   float64 `json:"units"`
	NAV     float64 `json:"nav"`
	Date    string  `json:"date"`
}

// PensionPriceRow maps a pension scheme to its latest and previous
// unit prices.
type PensionPriceRow struct {
	Scheme        string    `json:"scheme"`
	Price         float64   `json:"price"`
	PreviousPrice float64   `json:"previous_price"`
	AsOf          time.Time `json:"as_of"`
}
