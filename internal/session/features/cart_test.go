package features

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	cartapp "github.com/dwikikusuma/fruit-stand/internal/cart/app"
	cartdomain "github.com/dwikikusuma/fruit-stand/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/fruit-stand/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/fruit-stand/internal/catalog/domain"
	"github.com/dwikikusuma/fruit-stand/internal/catalog/infra/memory"
	checkoutapp "github.com/dwikikusuma/fruit-stand/internal/checkout/app"
	"github.com/dwikikusuma/fruit-stand/internal/session"
	"github.com/dwikikusuma/fruit-stand/pkg/logger"
	"github.com/shopspring/decimal"
)

type nopPresenter struct{}

func (nopPresenter) Render([]cartdomain.CartLine)          {}
func (nopPresenter) RenderCatalog([]catalogdomain.Product) {}

type cartTestContext struct {
	sess   *session.Session
	ledger decimal.Decimal
	err    error
}

func (c *cartTestContext) aNewShoppingSession() error {
	repo, err := memory.NewDefaultProductRepo()
	if err != nil {
		return err
	}
	c.sess = session.New(catalogapp.NewService(repo), nopPresenter{}, logger.Discard())
	c.ledger = decimal.Zero
	c.err = nil
	return nil
}

func (c *cartTestContext) iAddProduct(id int) error {
	c.err = c.sess.AddItem(context.Background(), id)
	return nil
}

func (c *cartTestContext) iRemoveProduct(id int) error {
	c.err = c.sess.RemoveItem(context.Background(), id)
	return nil
}

func (c *cartTestContext) iIncreaseProduct(id int) error {
	c.err = c.sess.IncreaseQuantity(context.Background(), id)
	return nil
}

func (c *cartTestContext) iDecreaseProduct(id int) error {
	c.err = c.sess.DecreaseQuantity(context.Background(), id)
	return nil
}

func (c *cartTestContext) iPay(amount string) error {
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	c.ledger, c.err = c.sess.Pay(context.Background(), a)
	return nil
}

func (c *cartTestContext) thePaymentSucceedsWithLedger(want string) error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	return equalMoney("ledger", c.ledger, want)
}

func (c *cartTestContext) theOperationFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected an error, got none")
	}
	switch msg {
	case "not found":
		if !errors.Is(c.err, cartapp.ErrNotFound) {
			return fmt.Errorf("expected not found, got %v", c.err)
		}
	case "insufficient funds":
		if !errors.Is(c.err, checkoutapp.ErrInsufficientFunds) {
			return fmt.Errorf("expected insufficient funds, got %v", c.err)
		}
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("error %q does not contain %q", c.err, msg)
	}
	return nil
}

func (c *cartTestContext) theCartIsEmpty() error {
	if n := len(c.sess.Lines()); n != 0 {
		return fmt.Errorf("expected empty cart, got %d lines", n)
	}
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if got := len(c.sess.Lines()); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) productHasQuantity(id, qty int) error {
	for _, l := range c.sess.Lines() {
		if l.ProductID == id {
			if l.Quantity != qty {
				return fmt.Errorf("product %d: expected quantity %d, got %d", id, qty, l.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("product %d not in cart", id)
}

func (c *cartTestContext) theCartTotalIs(want string) error {
	total, err := c.sess.Total(context.Background())
	if err != nil {
		return err
	}
	return equalMoney("total", total, want)
}

func (c *cartTestContext) theLedgerIs(want string) error {
	return equalMoney("ledger", c.sess.Ledger(), want)
}

func (c *cartTestContext) theCartLinesAre(list string) error {
	lines := c.sess.Lines()
	ids := strings.Split(list, ",")
	if len(ids) != len(lines) {
		return fmt.Errorf("expected %d lines, got %d", len(ids), len(lines))
	}
	for i, raw := range ids {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		if lines[i].ProductID != id {
			return fmt.Errorf("line %d: expected product %d, got %d", i, id, lines[i].ProductID)
		}
	}
	return nil
}

func equalMoney(what string, got decimal.Decimal, want string) error {
	w, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !got.Equal(w) {
		return fmt.Errorf("expected %s %s, got %s", what, w.StringFixed(2), got.StringFixed(2))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	// Given steps
	ctx.Step(`^a new shopping session$`, tc.aNewShoppingSession)

	// When steps
	ctx.Step(`^I add product (\d+)$`, tc.iAddProduct)
	ctx.Step(`^I remove product (\d+)$`, tc.iRemoveProduct)
	ctx.Step(`^I increase product (\d+)$`, tc.iIncreaseProduct)
	ctx.Step(`^I decrease product (\d+)$`, tc.iDecreaseProduct)
	ctx.Step(`^I pay (\d+(?:\.\d+)?)$`, tc.iPay)

	// Then steps
	ctx.Step(`^the payment succeeds with ledger (\d+(?:\.\d+)?)$`, tc.thePaymentSucceedsWithLedger)
	ctx.Step(`^the operation fails with "([^"]*)"$`, tc.theOperationFailsWith)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^product (\d+) has quantity (\d+)$`, tc.productHasQuantity)
	ctx.Step(`^the cart total is (\d+(?:\.\d+)?)$`, tc.theCartTotalIs)
	ctx.Step(`^the ledger is (\d+(?:\.\d+)?)$`, tc.theLedgerIs)
	ctx.Step(`^the cart lines are ([\d,]+)$`, tc.theCartLinesAre)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
