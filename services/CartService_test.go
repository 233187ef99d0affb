package services

import (
	"testing"

	"merchstore/entities"
	"merchstore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sid = "cart-session"

func testProducts() []entities.Product {
	return []entities.Product{
		{Id: "merch-1", Name: "Hoodie", Price: 100, CategoryId: entities.CategoryMerchandise, InStock: true},
		{Id: "merch-2", Name: "Poster", Price: 49.99, CategoryId: entities.CategoryMerchandise, InStock: true},
		{Id: "studio-1", Name: "Session", Price: 10000, CategoryId: entities.CategoryStudio, InStock: false},
	}
}

func newTestCartService() (CartService, *fakeCartRepo) {
	cr := newFakeCartRepo()
	return NewCartService(newFakeCatalogRepo(testProducts()...), cr), cr
}

func TestAddItemMergesByProductId(t *testing.T) {
	cs, _ := newTestCartService()
	require.NoError(t, cs.AddItem(sid, "merch-1", 1))
	require.NoError(t, cs.AddItem(sid, "merch-2", 2))
	require.NoError(t, cs.AddItem(sid, "merch-1", 3))

	cart, err := cs.GetCart(sid)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2, "one line per product id")
	assert.Equal(t, "merch-1", cart.Lines[0].Product.Id)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
	assert.Equal(t, 2, cart.Lines[1].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	cs, _ := newTestCartService()
	assert.ErrorIs(t, cs.AddItem(sid, "merch-1", 0), models.ErrBadRequest)
	assert.ErrorIs(t, cs.AddItem(sid, "merch-1", -1), models.ErrBadRequest)
	assert.ErrorIs(t, cs.AddItem(sid, "no-such-product", 1), models.ErrBadRequest)
	assert.ErrorIs(t, cs.AddItem(sid, "studio-1", 1), models.ErrNotAllowed)

	cart, err := cs.GetCart(sid)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestRemoveItem(t *testing.T) {
	cs, _ := newTestCartService()
	require.NoError(t, cs.AddItem(sid, "merch-1", 2))

	require.NoError(t, cs.RemoveItem(sid, "merch-1"))
	cart, _ := cs.GetCart(sid)
	assert.Empty(t, cart.Lines)

	// Absent line is a no-op, not an error.
	require.NoError(t, cs.RemoveItem(sid, "merch-1"))
}

func TestSetQuantity(t *testing.T) {
	cs, _ := newTestCartService()
	require.NoError(t, cs.AddItem(sid, "merch-1", 2))

	require.NoError(t, cs.SetQuantity(sid, "merch-1", 7))
	cart, _ := cs.GetCart(sid)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 7, cart.Lines[0].Quantity)

	for _, q := range []int{0, -5} {
		require.NoError(t, cs.AddItem(sid, "merch-2", 3))
		require.NoError(t, cs.SetQuantity(sid, "merch-2", q))
		cart, _ = cs.GetCart(sid)
		for _, l := range cart.Lines {
			assert.NotEqual(t, "merch-2", l.Product.Id, "quantity %d must remove the line", q)
		}
	}
}

func TestDerivedTotals(t *testing.T) {
	cs, _ := newTestCartService()
	require.NoError(t, cs.AddItem(sid, "merch-1", 2))

	resp, err := cs.GetCartResponse(sid)
	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.Subtotal)
	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 200.0, resp.Total)

	require.NoError(t, cs.SetDiscountAssetSelected(sid, true))
	resp, err = cs.GetCartResponse(sid)
	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.Subtotal)
	assert.Equal(t, 20.0, resp.Discount)
	assert.Equal(t, 180.0, resp.Total)
	assert.True(t, resp.UseDiscountToken)
}

func TestClear(t *testing.T) {
	cs, _ := newTestCartService()
	require.NoError(t, cs.AddItem(sid, "merch-1", 2))
	require.NoError(t, cs.AddItem(sid, "merch-2", 1))

	require.NoError(t, cs.Clear(sid))
	cart, err := cs.GetCart(sid)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestCartOwnsProductCopy(t *testing.T) {
	catalog := newFakeCatalogRepo(testProducts()...)
	cs := NewCartService(catalog, newFakeCartRepo())
	require.NoError(t, cs.AddItem(sid, "merch-1", 1))

	// A later catalog edit must not reach into an existing cart.
	edited, _, _ := catalog.GetById("merch-1")
	edited.Price = 999999
	_, err := catalog.Update(edited)
	require.NoError(t, err)

	cart, err := cs.GetCart(sid)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cart.Lines[0].Product.Price)
}

func TestCartsAreSessionScoped(t *testing.T) {
	cs, _ := newTestCartService()
	require.NoError(t, cs.AddItem("session-a", "merch-1", 1))

	cart, err := cs.GetCart("session-b")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}
