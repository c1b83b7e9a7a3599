package domain

import "github.com/shopspring/decimal"

// CartLine is a copy of a catalog product plus the quantity held in the cart.
type CartLine struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
	Image     string
	Quantity  int
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps at most one line per product, in first-added order. Quantities
// are always >= 1; a line that would drop to zero is removed.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID int) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Contains(productID int) bool {
	return c.indexOf(productID) >= 0
}

// Add increments the line for line.ProductID, or appends line with quantity 1.
// The returned line reflects the cart after the change.
func (c *Cart) Add(line CartLine) CartLine {
	if i := c.indexOf(line.ProductID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i]
	}
	line.Quantity = 1
	c.lines = append(c.lines, line)
	return line
}

// Remove deletes the whole line. It reports false when no line matched.
func (c *Cart) Remove(productID int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// Decrement lowers the quantity by one, removing the line at zero. It
// returns the remaining quantity and false when no line matched.
func (c *Cart) Decrement(productID int) (int, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return 0, false
	}
	if c.lines[i].Quantity <= 1 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return 0, true
	}
	c.lines[i].Quantity--
	return c.lines[i].Quantity, true
}

// Lines returns a snapshot; changes to it do not reach the cart.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}
