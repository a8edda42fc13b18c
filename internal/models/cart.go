package models

import "github.com/shopspring/decimal"

// CartLine is one product in a cart. UnitPrice is snapshotted when the line
// is added so a later catalog price change does not alter an open cart.
type CartLine struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Cart holds the lines of a checkout session in insertion order, plus the
// coupon code the user typed, if any. The zero value is an empty cart.
type Cart struct {
	Lines      []CartLine
	CouponCode string
}

// SetLine adds or updates the line for a product. Updates are applied in the
// order issued: the last write for a product wins, and a quantity below one
// removes the line. Insertion order of surviving lines is preserved.
func (c *Cart) SetLine(productID int64, quantity int, unitPrice decimal.Decimal) {
	if quantity < 1 {
		c.RemoveLine(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			c.Lines[i].UnitPrice = unitPrice
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice})
}

// RemoveLine drops the line for a product, if present.
func (c *Cart) RemoveLine(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Subtotal is the sum of unit price times quantity over all lines.
func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

func (c Cart) Validate() error {
	for _, l := range c.Lines {
		if l.Quantity < 1 {
			return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
		}
		if l.UnitPrice.IsNegative() {
			return &ValidationError{Field: "unitPrice", Reason: "must not be negative"}
		}
	}
	return nil
}
