// Package storefront is the terminal presentation layer. It draws the
// catalog and cart, reports failures to the shopper and turns typed commands
// into session operations.
package storefront

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	cartapp "github.com/dwikikusuma/fruit-stand/internal/cart/app"
	cartdomain "github.com/dwikikusuma/fruit-stand/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/fruit-stand/internal/catalog/domain"
	checkoutapp "github.com/dwikikusuma/fruit-stand/internal/checkout/app"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const emptyCart = "Your cart is currently empty"

type Shop interface {
	Products(ctx context.Context) ([]catalogdomain.Product, error)
	AddItem(ctx context.Context, productID int) error
	RemoveItem(ctx context.Context, productID int) error
	IncreaseQuantity(ctx context.Context, productID int) error
	DecreaseQuantity(ctx context.Context, productID int) error
	Lines() []cartdomain.CartLine
	Total(ctx context.Context) (decimal.Decimal, error)
	Pay(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
	Ledger() decimal.Decimal
}

type Terminal struct {
	out io.Writer
	p   *message.Printer
	log *slog.Logger
}

func NewTerminal(out io.Writer, log *slog.Logger) *Terminal {
	if log == nil {
		log = slog.Default()
	}
	return &Terminal{
		out: out,
		p:   message.NewPrinter(language.AmericanEnglish),
		log: log,
	}
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func (t *Terminal) Render(lines []cartdomain.CartLine) {
	if len(lines) == 0 {
		t.p.Fprintf(t.out, "%s\n", emptyCart)
		return
	}
	t.p.Fprintf(t.out, "Cart:\n")
	for _, l := range lines {
		t.p.Fprintf(t.out, "  [%d] %s\n", l.ProductID, l.Name)
		t.p.Fprintf(t.out, "      Price: %s  Quantity: %d  Total: %s\n", money(l.Price), l.Quantity, money(l.LineTotal()))
	}
}

func (t *Terminal) RenderCatalog(products []catalogdomain.Product) {
	t.p.Fprintf(t.out, "Products:\n")
	for _, p := range products {
		t.p.Fprintf(t.out, "  [%d] %s  %s  (%s)\n", p.ID, p.Name, money(p.Price), p.Image)
	}
}

// Notify interrupts the shopper with a failure. Known domain errors are shown
// as is; anything else is logged and reported generically.
func (t *Terminal) Notify(err error) {
	var uerr usageError
	switch {
	case errors.Is(err, cartapp.ErrNotFound), errors.Is(err, checkoutapp.ErrInsufficientFunds), errors.As(err, &uerr):
		t.p.Fprintf(t.out, "! %s\n", err.Error())
	default:
		t.log.Error("operation failed", slog.Any("err", err))
		t.p.Fprintf(t.out, "! something went wrong, please try again\n")
	}
}

// usageError marks malformed input; it never reaches the session.
type usageError string

func (e usageError) Error() string { return string(e) }

func (t *Terminal) help() {
	t.p.Fprintf(t.out, "Commands:\n")
	t.p.Fprintf(t.out, "  add <id>      add a product to the cart\n")
	t.p.Fprintf(t.out, "  inc <id>      increase quantity by one\n")
	t.p.Fprintf(t.out, "  dec <id>      decrease quantity by one\n")
	t.p.Fprintf(t.out, "  remove <id>   remove a product from the cart\n")
	t.p.Fprintf(t.out, "  pay <amount>  pay in cash\n")
	t.p.Fprintf(t.out, "  total         show the cart total\n")
	t.p.Fprintf(t.out, "  change        show the change held so far\n")
	t.p.Fprintf(t.out, "  cart          show the cart\n")
	t.p.Fprintf(t.out, "  catalog       show the products\n")
	t.p.Fprintf(t.out, "  quit          leave the store\n")
}

// Run reads one command per line from in until quit, EOF or ctx is done.
func (t *Terminal) Run(ctx context.Context, in io.Reader, shop Shop) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				scanErr <- nil
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			if quit := t.dispatch(ctx, shop, line); quit {
				return nil
			}
		}
	}
}

func (t *Terminal) dispatch(ctx context.Context, shop Shop, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	t.log.Debug("command", slog.String("cmd", cmd), slog.Any("args", args))

	var err error
	switch cmd {
	case "add":
		err = withProductID(args, func(id int) error { return shop.AddItem(ctx, id) })
	case "inc", "+":
		err = withProductID(args, func(id int) error { return shop.IncreaseQuantity(ctx, id) })
	case "dec", "-":
		err = withProductID(args, func(id int) error { return shop.DecreaseQuantity(ctx, id) })
	case "remove", "rm":
		err = withProductID(args, func(id int) error { return shop.RemoveItem(ctx, id) })
	case "pay":
		err = t.pay(ctx, shop, args)
	case "total":
		var total decimal.Decimal
		if total, err = shop.Total(ctx); err == nil {
			t.p.Fprintf(t.out, "Cart total: %s\n", money(total))
		}
	case "change", "ledger":
		t.p.Fprintf(t.out, "Change held: %s\n", money(shop.Ledger()))
	case "cart":
		t.Render(shop.Lines())
	case "catalog", "products":
		var products []catalogdomain.Product
		if products, err = shop.Products(ctx); err == nil {
			t.RenderCatalog(products)
		}
	case "help", "?":
		t.help()
	case "quit", "exit":
		t.p.Fprintf(t.out, "Bye\n")
		return true
	default:
		err = usageError(fmt.Sprintf("unknown command %q, type help", cmd))
	}

	if err != nil {
		t.Notify(err)
	}
	return false
}

func (t *Terminal) pay(ctx context.Context, shop Shop, args []string) error {
	if len(args) != 1 {
		return usageError("usage: pay <amount>")
	}
	amount, err := decimal.NewFromString(strings.TrimPrefix(args[0], "$"))
	if err != nil {
		return usageError(fmt.Sprintf("invalid amount %q", args[0]))
	}

	ledger, err := shop.Pay(ctx, amount)
	if err != nil {
		return err
	}
	t.p.Fprintf(t.out, "Payment accepted. Change held: %s\n", money(ledger))
	return nil
}

func withProductID(args []string, fn func(id int) error) error {
	if len(args) != 1 {
		return usageError("expected one product id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return usageError(fmt.Sprintf("invalid product id %q", args[0]))
	}
	return fn(id)
}
