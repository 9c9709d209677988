package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProduct_TrimsAndValidates(t *testing.T) {
	p, err := NewProduct(" p1 ", "  Mug ", 4.5, " ceramic ", 2, "")
	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)
	require.Equal(t, "Mug", p.Name)
	require.Equal(t, "ceramic", p.Description)

	_, err = NewProduct("p1", " ", 1, "x", 1, "")
	require.ErrorIs(t, err, ErrEmptyName)
	_, err = NewProduct("p1", "Mug", 1, "", 1, "")
	require.ErrorIs(t, err, ErrEmptyDescription)
	_, err = NewProduct("p1", "Mug", -1, "x", 1, "")
	require.ErrorIs(t, err, ErrInvalidPrice)
	_, err = NewProduct("p1", "Mug", math.NaN(), "x", 1, "")
	require.ErrorIs(t, err, ErrInvalidPrice)
	_, err = NewProduct("p1", "Mug", 1, "x", -2, "")
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestProduct_Decrement(t *testing.T) {
	p := &Product{ID: "p1", Name: "Mug", Description: "x", Quantity: 2}

	require.ErrorIs(t, p.Decrement(0), ErrInvalidPurchaseQty)
	require.ErrorIs(t, p.Decrement(3), ErrInsufficientStock)
	require.EqualValues(t, 2, p.Quantity)

	require.NoError(t, p.Decrement(2))
	require.EqualValues(t, 0, p.Quantity)
	require.False(t, p.InStock())
}
