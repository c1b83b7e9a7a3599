package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID    int
	Name  string
	Price decimal.Decimal
	Image string
}
