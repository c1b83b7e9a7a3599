// Package session owns the state of one shopper: the cart, the payment
// ledger and the presenter they report to. Restarting a session is the only
// way to reset the ledger.
package session

import (
	"context"
	"fmt"
	"log/slog"

	cartapp "github.com/dwikikusuma/fruit-stand/internal/cart/app"
	cartdomain "github.com/dwikikusuma/fruit-stand/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/fruit-stand/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/fruit-stand/internal/catalog/domain"
	checkoutapp "github.com/dwikikusuma/fruit-stand/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/fruit-stand/internal/checkout/domain"
	checkoutadapter "github.com/dwikikusuma/fruit-stand/internal/checkout/infra/adapter"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Presenter interface {
	cartapp.Renderer
	RenderCatalog(products []catalogdomain.Product)
}

type Session struct {
	ID string

	catalog   *catalogapp.Service
	cart      *cartapp.Service
	checkout  *checkoutapp.Service
	presenter Presenter
	log       *slog.Logger
}

func New(catalog *catalogapp.Service, presenter Presenter, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.NewString()
	log = log.With(slog.String("session_id", id))

	cartSvc := cartapp.NewService(catalog, presenter, log.With("component", "cart"))
	cartReader := checkoutadapter.NewCartServiceReader(cartSvc)
	checkoutSvc := checkoutapp.NewService(cartReader, checkoutdomain.NewLedger(), log.With("component", "checkout"))

	return &Session{
		ID:        id,
		catalog:   catalog,
		cart:      cartSvc,
		checkout:  checkoutSvc,
		presenter: presenter,
		log:       log,
	}
}

// Start shows the catalog and the (empty) cart.
func (s *Session) Start(ctx context.Context) error {
	products, err := s.catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	s.presenter.RenderCatalog(products)
	s.presenter.Render(s.cart.Lines())
	s.log.Info("session started", slog.Int("products", len(products)))
	return nil
}

func (s *Session) Products(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.catalog.List(ctx)
}

func (s *Session) AddItem(ctx context.Context, productID int) error {
	return s.cart.AddItem(ctx, productID)
}

func (s *Session) RemoveItem(ctx context.Context, productID int) error {
	return s.cart.RemoveItem(ctx, productID)
}

func (s *Session) IncreaseQuantity(ctx context.Context, productID int) error {
	return s.cart.IncreaseQuantity(ctx, productID)
}

func (s *Session) DecreaseQuantity(ctx context.Context, productID int) error {
	return s.cart.DecreaseQuantity(ctx, productID)
}

func (s *Session) Lines() []cartdomain.CartLine {
	return s.cart.Lines()
}

func (s *Session) Total(ctx context.Context) (decimal.Decimal, error) {
	return s.checkout.Total(ctx)
}

func (s *Session) Pay(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.checkout.Pay(ctx, amount)
}

func (s *Session) Ledger() decimal.Decimal {
	return s.checkout.Ledger()
}
