package adapter

import (
	"context"

	cartdomain "github.com/dwikikusuma/fruit-stand/internal/cart/domain"
	checkoutdomain "github.com/dwikikusuma/fruit-stand/internal/checkout/domain"
)

type CartLister interface {
	Lines() []cartdomain.CartLine
}

type CartServiceReader struct {
	svc CartLister
}

func NewCartServiceReader(svc CartLister) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context) ([]checkoutdomain.Line, error) {
	lines := r.svc.Lines()

	items := make([]checkoutdomain.Line, 0, len(lines))
	for _, l := range lines {
		items = append(items, checkoutdomain.Line{
			ProductID: l.ProductID,
			UnitPrice: l.Price,
			Quantity:  l.Quantity,
		})
	}
	return items, nil
}
