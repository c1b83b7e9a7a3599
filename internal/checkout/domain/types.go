package domain

import "github.com/shopspring/decimal"

type Line struct {
	ProductID int
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartTotal sums price * quantity over lines. An empty cart totals zero.
func CartTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

// Ledger accumulates the change handed back across payments in a session.
// It only grows; a new session starts from zero.
type Ledger struct {
	change decimal.Decimal
}

func NewLedger() *Ledger {
	return &Ledger{change: decimal.Zero}
}

func (l *Ledger) Credit(amount decimal.Decimal) decimal.Decimal {
	l.change = l.change.Add(amount)
	return l.change
}

func (l *Ledger) Balance() decimal.Decimal {
	return l.change
}
