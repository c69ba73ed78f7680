package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronautumn/hhnyc-api/models"
)

var brownie = models.Product{
	ID:    "rec123",
	Name:  "Fudge Brownie",
	Price: 20,
	Variations: []models.Variation{
		{Name: "Double Stack", Price: 35, Stock: 10},
	},
}

func TestAdd_MergesSameLine(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(brownie, "", 1))
	require.NoError(t, c.Add(brownie, "", 1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 20.0, lines[0].UnitPrice)
}

func TestAdd_VariationGetsOwnLine(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(brownie, "", 1))
	require.NoError(t, c.Add(brownie, "Double Stack", 2))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 35.0, lines[1].UnitPrice)
	assert.Equal(t, 90.0, c.Subtotal())
}

func TestAdd_Errors(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.Add(brownie, "", 0), ErrBadQuantity)
	assert.ErrorIs(t, c.Add(brownie, "Triple Stack", 1), ErrUnknownVariation)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(brownie, "", 3))

	c.UpdateQuantity(brownie.ID, "", 5)
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	// Dropping below one removes the line.
	c.UpdateQuantity(brownie.ID, "", 0)
	assert.True(t, c.IsEmpty())

	// Unknown lines are a no-op.
	c.UpdateQuantity("recXYZ", "", 2)
	assert.True(t, c.IsEmpty())
}

func TestRemove(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(brownie, "", 1))
	require.NoError(t, c.Add(brownie, "Double Stack", 1))

	c.Remove(brownie.ID, "Double Stack")
	require.Len(t, c.Lines(), 1)
	assert.Empty(t, c.Lines()[0].Variation)

	require.NoError(t, c.Add(brownie, "Double Stack", 1))
	c.Remove(brownie.ID, "")
	assert.True(t, c.IsEmpty())
}

func TestClear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(brownie, "", 2))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.Subtotal())
}

func TestStore_IndependentSessions(t *testing.T) {
	s := NewStore()
	a := s.Get("session-a")
	b := s.Get("session-b")

	require.NoError(t, a.Add(brownie, "", 1))
	assert.True(t, b.IsEmpty())
	assert.Same(t, a, s.Get("session-a"))

	s.Drop("session-a")
	assert.True(t, s.Get("session-a").IsEmpty())
}
