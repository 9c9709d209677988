package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	mug  = ProductRef{ID: "p-mug", Name: "Mug", Price: 8}
	lamp = ProductRef{ID: "p-lamp", Name: "Lamp", Price: 25.5}
)

func TestAddToCart_NewLineUsesRequestedQty(t *testing.T) {
	c := NewCart()
	items := c.AddToCart(mug, 3)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Qty)
	require.Equal(t, "Mug", items[0].Name)
}

func TestAddToCart_ExistingLineIncrementsByOne(t *testing.T) {
	c := NewCart()
	c.AddToCart(mug, 3)
	items := c.AddToCart(mug, 10)
	require.Len(t, items, 1)
	require.Equal(t, 4, items[0].Qty)
}

func TestAddToCart_ClampsNonPositive(t *testing.T) {
	c := NewCart()
	require.Equal(t, 1, c.AddToCart(mug, 0)[0].Qty)
	require.Equal(t, 1, c.AddToCart(lamp, -4)[1].Qty)
}

func TestUpdateQty(t *testing.T) {
	c := NewCart()
	c.AddToCart(mug, 2)

	require.Equal(t, 1, c.UpdateQty("p-mug", 0)[0].Qty)
	require.Equal(t, 1, c.UpdateQty("p-mug", -7)[0].Qty)
	require.Equal(t, 9, c.UpdateQty("p-mug", 9)[0].Qty)

	items := c.UpdateQty("missing", 5)
	require.Len(t, items, 1)
}

func TestRemoveAndClear(t *testing.T) {
	c := NewCart()
	c.AddToCart(mug, 1)
	c.AddToCart(lamp, 1)

	items := c.RemoveFromCart("p-mug")
	require.Len(t, items, 1)
	require.Equal(t, "p-lamp", items[0].ProductID)

	require.Len(t, c.RemoveFromCart("nope"), 1)
	require.Empty(t, c.ClearCart())
	require.Zero(t, c.Len())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := NewCart()
	items := c.AddToCart(mug, 1)
	items[0].Qty = 99
	require.Equal(t, 1, c.Items()[0].Qty)
}

func TestTotal(t *testing.T) {
	c := NewCart()
	c.AddToCart(mug, 2)
	c.AddToCart(lamp, 1)
	require.InDelta(t, 41.5, c.Total(), 1e-9)
}

// Any sequence of mutations keeps product ids unique and quantities at least one.
func TestCartInvariants_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		catalog := []ProductRef{mug, lamp, {ID: "p-desk", Name: "Desk", Price: 120}}
		c := NewCart()

		t.Repeat(map[string]func(*rapid.T){
			"add": func(t *rapid.T) {
				p := rapid.SampledFrom(catalog).Draw(t, "product")
				c.AddToCart(p, rapid.IntRange(-5, 20).Draw(t, "qty"))
			},
			"update": func(t *rapid.T) {
				p := rapid.SampledFrom(catalog).Draw(t, "product")
				c.UpdateQty(p.ID, rapid.IntRange(-5, 20).Draw(t, "qty"))
			},
			"remove": func(t *rapid.T) {
				p := rapid.SampledFrom(catalog).Draw(t, "product")
				c.RemoveFromCart(p.ID)
			},
			"clear": func(t *rapid.T) {
				if rapid.IntRange(0, 9).Draw(t, "roll") == 0 {
					c.ClearCart()
				}
			},
			"": func(t *rapid.T) {
				seen := map[string]bool{}
				for _, item := range c.Items() {
					if seen[item.ProductID] {
						t.Fatalf("duplicate line for %s", item.ProductID)
					}
					seen[item.ProductID] = true
					if item.Qty < 1 {
						t.Fatalf("qty %d below one for %s", item.Qty, item.ProductID)
					}
				}
			},
		})
	})
}

// Adding an existing product increments by exactly one regardless of the requested quantity.
func TestAddExisting_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewCart()
		first := rapid.IntRange(-3, 50).Draw(t, "first")
		second := rapid.IntRange(-3, 50).Draw(t, "second")

		before := c.AddToCart(mug, first)[0].Qty
		after := c.AddToCart(mug, second)[0].Qty
		if after != before+1 {
			t.Fatalf("expected %d, got %d", before+1, after)
		}
	})
}
