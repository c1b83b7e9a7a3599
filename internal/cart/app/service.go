package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/fruit-stand/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/fruit-stand/internal/catalog/app"
)

var ErrNotFound = errors.New("not found")

type Service struct {
	cart     *domain.Cart
	catalog  ProductFinder
	renderer Renderer
	log      *slog.Logger
}

func NewService(catalog ProductFinder, renderer Renderer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:     domain.NewCart(),
		catalog:  catalog,
		renderer: renderer,
		log:      log,
	}
}

func (s *Service) AddItem(ctx context.Context, productID int) error {
	p, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return s.mapErr(productID, err)
	}

	line := s.cart.Add(domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
	})
	s.log.Debug("cart item added", slog.Int("product_id", productID), slog.Int("quantity", line.Quantity))

	s.render()
	return nil
}

func (s *Service) IncreaseQuantity(ctx context.Context, productID int) error {
	return s.AddItem(ctx, productID)
}

func (s *Service) RemoveItem(ctx context.Context, productID int) error {
	if !s.cart.Remove(productID) {
		s.log.Info("remove rejected", slog.Int("product_id", productID))
		return fmt.Errorf("item with ID %d not in cart: %w", productID, ErrNotFound)
	}
	s.log.Debug("cart item removed", slog.Int("product_id", productID))

	s.render()
	return nil
}

func (s *Service) DecreaseQuantity(ctx context.Context, productID int) error {
	qty, ok := s.cart.Decrement(productID)
	if !ok {
		s.log.Info("decrease rejected", slog.Int("product_id", productID))
		return fmt.Errorf("item with ID %d not in cart: %w", productID, ErrNotFound)
	}
	s.log.Debug("cart item decreased", slog.Int("product_id", productID), slog.Int("quantity", qty))

	s.render()
	return nil
}

func (s *Service) Lines() []domain.CartLine {
	return s.cart.Lines()
}

func (s *Service) render() {
	if s.renderer != nil {
		s.renderer.Render(s.cart.Lines())
	}
}

func (s *Service) mapErr(productID int, err error) error {
	if errors.Is(err, catalogapp.ErrNotFound) {
		s.log.Info("add rejected", slog.Int("product_id", productID))
		return fmt.Errorf("item with ID %d: %w", productID, ErrNotFound)
	}
	return fmt.Errorf("find product %d: %w", productID, err)
}
