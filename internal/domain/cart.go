package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CartLine is one product in a visitor's cart. Quantity is always at least 1.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Cart is the session-resident cart. Lines keep first-added order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add puts one unit of productID into the cart.
func (c *Cart) Add(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: 1})
}

func (c Cart) IsEmpty() bool {
	return c.Units() == 0
}

// Units counts every unit across all lines.
func (c Cart) Units() int {
	n := 0
	for _, l := range c.Lines {
		if l.Quantity > 0 {
			n += l.Quantity
		}
	}
	return n
}

// ProductIDs expands the cart into one id per unit.
func (c Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, c.Units())
	for _, l := range c.Lines {
		for i := 0; i < l.Quantity; i++ {
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

type LineItem struct {
	Product  *Product        `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartSummary struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Description renders the items as "2x Name, 1x Other", the text stored on orders.
func (s *CartSummary) Description() string {
	parts := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Product.Name))
	}
	return strings.Join(parts, ", ")
}
