package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/fruit-stand/internal/checkout/domain"
	"github.com/shopspring/decimal"
)

type CartReader interface {
	GetCart(ctx context.Context) ([]domain.Line, error)
}

var ErrInsufficientFunds = errors.New("insufficient funds for this transaction")

type Service struct {
	Cart CartReader

	ledger *domain.Ledger
	log    *slog.Logger
}

func NewService(cart CartReader, ledger *domain.Ledger, log *slog.Logger) *Service {
	if ledger == nil {
		ledger = domain.NewLedger()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Cart:   cart,
		ledger: ledger,
		log:    log,
	}
}

func (s *Service) Total(ctx context.Context) (decimal.Decimal, error) {
	lines, err := s.Cart.GetCart(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("read cart: %w", err)
	}
	return domain.CartTotal(lines), nil
}

// Pay settles amount against the cart total and adds the change to the
// ledger, returning the new ledger balance. The cart is left as is.
func (s *Service) Pay(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	total, err := s.Total(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if amount.LessThan(total) {
		s.log.Info("payment rejected",
			slog.String("amount", amount.String()),
			slog.String("total", total.String()),
		)
		return decimal.Zero, fmt.Errorf("paid %s of %s: %w", amount.StringFixed(2), total.StringFixed(2), ErrInsufficientFunds)
	}

	change := amount.Sub(total)
	balance := s.ledger.Credit(change)
	s.log.Debug("payment settled",
		slog.String("amount", amount.String()),
		slog.String("total", total.String()),
		slog.String("change", change.String()),
		slog.String("ledger", balance.String()),
	)
	return balance, nil
}

func (s *Service) Ledger() decimal.Decimal {
	return s.ledger.Balance()
}
