package ledger

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rajatgoyal/foliocore/internal/common"
	"github.com/rajatgoyal/foliocore/internal/models"
)

// buyKeywords and sellKeywords classify free-text transaction types.
// Matching is case-insensitive substring; buy keywords win on ties
// (e.g. "Dividend Payout" is a reinvestment credit, not a sale).
var buyKeywords = []string{"buy", "purchase", "sip", "switch-in", "switch in", "contribution", "allotment", "dividend"}

var sellKeywords = []string{"sell", "redeem", "withdraw", "switch-out", "switch out", "stp-out", "charges", "exit", "transfer", "payout"}

// dateLayouts are tried in order when parsing collaborator date strings.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02-Jan-2006",
	"02/01/2006",
	"2006-01-02T15:04:05Z07:00",
}

// ParseDate parses a collaborator date string, trying each known
// layout. A time component after "T" is ignored for date-only layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if idx := strings.IndexByte(s, 'T'); idx == 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Classify maps free-text transaction type to the closed EventKind
// enumeration, falling back to the sign of units when the text is
// absent or matches no keyword. The second return is false when no
// classification is possible (unknown text and zero units).
func Classify(text string, units float64) (models.EventKind, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower != "" {
		for _, kw := range buyKeywords {
			if strings.Contains(lower, kw) {
				return models.EventBuy, true
			}
		}
		for _, kw := range sellKeywords {
			if strings.Contains(lower, kw) {
				return models.EventSell, true
			}
		}
	}
	if units > Epsilon {
		return models.EventBuy, true
	}
	if units < -Epsilon {
		return models.EventSell, true
	}
	return "", false
}

// Normalizer converts raw collaborator rows into canonical events.
// Rows missing a required identifier or date are skipped per record,
// never failing the batch. Sequence numbers preserve source order so
// same-day fills replay in arrival order.
type Normalizer struct {
	logger *common.Logger
	seq    int64
}

// NewNormalizer creates a normalizer.
func NewNormalizer(logger *common.Logger) *Normalizer {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Normalizer{logger: logger}
}

func (n *Normalizer) next() int64 {
	n.seq++
	return n.seq
}

func (n *Normalizer) skip(reason, instrument, account string) {
	n.logger.Warn().
		Str("reason", reason).
		Str("instrument", instrument).
		Str("account", account).
		Msg("Skipping malformed record")
}

// FundEvents normalizes mutual-fund transaction rows.
func (n *Normalizer) FundEvents(rows []models.FundTransactionRow) []models.TransactionEvent {
	events := make([]models.TransactionEvent, 0, len(rows))
	for _, row := range rows {
		ev, ok := n.unitEvent(row.Scheme, row.Account, row.Type, row.Units, row.NAV, row.Date)
		if ok {
			events = append(events, ev)
		}
	}
	return events
}

// PensionEvents normalizes pension-scheme unit rows.
func (n *Normalizer) PensionEvents(rows []models.PensionUnitsRow) []models.TransactionEvent {
	events := make([]models.TransactionEvent, 0, len(rows))
	for _, row := range rows {
		ev, ok := n.unitEvent(row.Scheme, row.Account, row.Type, row.Units, row.NAV, row.Date)
		if ok {
			events = append(events, ev)
		}
	}
	return events
}

// EquityBuyEvents normalizes the buy side of open equity trade rows so
// open positions can be replayed through the lot book.
func (n *Normalizer) EquityBuyEvents(rows []models.EquityTradeRow) []models.TransactionEvent {
	events := make([]models.TransactionEvent, 0, len(rows))
	for _, row := range rows {
		if row.Symbol == "" || row.Account == "" {
			n.skip("missing identifier", row.Symbol, row.Account)
			continue
		}
		date, ok := ParseDate(row.BuyDate)
		if !ok {
			n.skip("unparseable buy date", row.Symbol, row.Account)
			continue
		}
		if row.Quantity <= Epsilon || !isFinite(row.Quantity) || !isFinite(row.BuyPrice) {
			n.skip("invalid quantity or price", row.Symbol, row.Account)
			continue
		}
		events = append(events, models.TransactionEvent{
			ID:            uuid.NewString(),
			Key:           models.LedgerKey{Instrument: row.Symbol, Account: row.Account},
			Kind:          models.EventBuy,
			Units:         row.Quantity,
			Price:         row.BuyPrice,
			EffectiveDate: date,
			Sequence:      n.next(),
		})
	}
	return events
}

func (n *Normalizer) unitEvent(instrument, account, typeText string, units, nav float64, dateStr string) (models.TransactionEvent, bool) {
	if instrument == "" || account == "" {
		n.skip("missing identifier", instrument, account)
		return models.TransactionEvent{}, false
	}
	date, ok := ParseDate(dateStr)
	if !ok {
		n.skip("unparseable date", instrument, account)
		return models.TransactionEvent{}, false
	}
	if !isFinite(units) || !isFinite(nav) {
		n.skip("non-finite amount", instrument, account)
		return models.TransactionEvent{}, false
	}
	kind, ok := Classify(typeText, units)
	if !ok {
		n.skip("unclassifiable type", instrument, account)
		return models.TransactionEvent{}, false
	}

	return models.TransactionEvent{
		ID:            uuid.NewString(),
		Key:           models.LedgerKey{Instrument: instrument, Account: account},
		Kind:          kind,
		Units:         math.Abs(units),
		Price:         nav,
		EffectiveDate: date,
		Sequence:      n.next(),
	}, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
