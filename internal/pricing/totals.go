// Package pricing computes order totals in exact decimal arithmetic.
package pricing

import "github.com/shopspring/decimal"

// DefaultDeliveryFee is the storefront's flat delivery charge.
var DefaultDeliveryFee = decimal.RequireFromString("2.99")

// Line is one priced position of a cart or order.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Amount returns UnitPrice × Quantity.
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Calculator applies a fixed delivery fee to a sequence of lines.
type Calculator struct {
	deliveryFee decimal.Decimal
}

func NewCalculator(deliveryFee decimal.Decimal) Calculator {
	return Calculator{deliveryFee: deliveryFee}
}

func (c Calculator) DeliveryFee() decimal.Decimal {
	return c.deliveryFee
}

// Compute returns subtotal, fee and total. An empty input yields a zero
// subtotal and a total equal to the delivery fee.
func (c Calculator) Compute(lines []Line) Totals {
	subtotal := Subtotal(lines)
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: c.deliveryFee,
		Total:       subtotal.Add(c.deliveryFee),
	}
}

// Subtotal sums UnitPrice × Quantity over lines.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Amount())
	}
	return sum
}

// Display renders an amount with two fractional digits. Use it only when
// presenting values; never feed the result back into arithmetic.
func Display(d decimal.Decimal) string {
	return d.StringFixed(2)
}
