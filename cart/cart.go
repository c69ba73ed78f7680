// Package cart holds the per-session shopping cart. Carts are explicit
// instances owned by a session store, never package state, so tests and
// handlers can run independent carts side by side.
package cart

import (
	"errors"
	"sync"

	"github.com/ronautumn/hhnyc-api/models"
	"github.com/ronautumn/hhnyc-api/pricing"
)

var (
	ErrBadQuantity      = errors.New("quantity must be at least 1")
	ErrUnknownVariation = errors.New("product has no such variation")
)

// Line is a cart line keyed by (ProductID, Variation). The unit price is
// snapshotted at add time: the variation price when one is selected, the base
// price otherwise.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Variation string  `json:"variation,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges quantity into an existing (productID, variation) line or appends
// a new one. No two lines ever share the same key.
func (c *Cart) Add(p models.Product, variation string, quantity int) error {
	if quantity < 1 {
		return ErrBadQuantity
	}
	if variation != "" {
		if _, ok := p.Variation(variation); !ok {
			return ErrUnknownVariation
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == p.ID && c.lines[i].Variation == variation {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Variation: variation,
		UnitPrice: p.EffectivePrice(variation),
		Quantity:  quantity,
	})
	return nil
}

// UpdateQuantity sets the quantity of the matching line, removing it when
// quantity drops below 1. Unknown lines are ignored.
func (c *Cart) UpdateQuantity(productID, variation string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Variation == variation {
			if quantity < 1 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			} else {
				c.lines[i].Quantity = quantity
			}
			return
		}
	}
}

// Remove deletes every line for productID. With a non-empty variation only
// that variation's line goes; with "" all of the product's lines go.
func (c *Cart) Remove(productID, variation string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ProductID == productID && (variation == "" || l.Variation == variation) {
			continue
		}
		kept = append(kept, l)
	}
	c.lines = kept
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// PricingLines converts the cart for the pricing engine.
func (c *Cart) PricingLines() []pricing.Line {
	lines := c.Lines()
	out := make([]pricing.Line, len(lines))
	for i, l := range lines {
		out[i] = pricing.Line{Price: l.UnitPrice, Quantity: l.Quantity}
	}
	return out
}

func (c *Cart) Subtotal() float64 {
	return pricing.Subtotal(c.PricingLines())
}
