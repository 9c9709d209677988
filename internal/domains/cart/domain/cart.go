package domain

// ProductRef carries the product fields a line item denormalises at add time.
type ProductRef struct {
	ID    string
	Name  string
	Price float64
	Image string
}

// LineItem is one product entry in a cart. Qty is never checked against inventory here.
type LineItem struct {
	ProductID string
	Name      string
	Price     float64
	Image     string
	Qty       int
}

// Subtotal returns price times quantity for the line.
func (l LineItem) Subtotal() float64 {
	return l.Price * float64(l.Qty)
}

// Cart holds at most one line item per product, in insertion order.
// A Cart is not safe for concurrent use; the owning session serialises access.
type Cart struct {
	items []LineItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddToCart bumps an existing line by one, ignoring requestedQty, or appends a
// new line with max(1, requestedQty).
func (c *Cart) AddToCart(product ProductRef, requestedQty int) []LineItem {
	if i := c.index(product.ID); i >= 0 {
		c.items[i].Qty++
		return c.Items()
	}
	c.items = append(c.items, LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Qty:       clampQty(requestedQty),
	})
	return c.Items()
}

// RemoveFromCart deletes the line for productID if present.
func (c *Cart) RemoveFromCart(productID string) []LineItem {
	if i := c.index(productID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	return c.Items()
}

// UpdateQty sets the line quantity to max(1, qty). Unknown products are ignored.
func (c *Cart) UpdateQty(productID string, qty int) []LineItem {
	if i := c.index(productID); i >= 0 {
		c.items[i].Qty = clampQty(qty)
	}
	return c.Items()
}

// ClearCart empties the cart.
func (c *Cart) ClearCart() []LineItem {
	c.items = nil
	return c.Items()
}

// Items returns a copy of the line items.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of distinct products.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total sums the line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

func (c *Cart) index(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func clampQty(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}
