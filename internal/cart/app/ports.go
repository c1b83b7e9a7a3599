package app

import (
	"context"

	"github.com/dwikikusuma/fruit-stand/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/fruit-stand/internal/catalog/domain"
)

type ProductFinder interface {
	FindByID(ctx context.Context, id int) (catalogdomain.Product, error)
}

// Renderer replaces the visible cart. It is called after every successful
// mutation with a snapshot of the lines.
type Renderer interface {
	Render(lines []domain.CartLine)
}
