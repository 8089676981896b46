package cart

import (
	"math"
	"sync"
	"testing"

	"github.com/hngoc-dev/gift-shop-backend/internal/product"
)

const (
	testUserID  = "3b9d6d7e-8e36-49a1-9b60-6f6e0c9ad101"
	otherUserID = "9e2a1f34-5dc0-4f2a-8e75-2c3b4d5e6f70"
	mugID       = "d1f9a8b2-1c3e-4a5f-9b7d-0e1f2a3b4c5d"
	candleID    = "a7c5e3d1-9b8f-4e2d-8c6a-5f4e3d2c1b0a"
)

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]product.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]product.Product{
		mugID:    {ID: mugID, Name: "INFP Mug", Price: 10},
		candleID: {ID: candleID, Name: "Lavender Candle", Price: 25, DiscountedPrice: 20},
	}}
}

func (f *fakeCatalog) GetByID(id string) (product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) ListByIDs(ids []string) ([]product.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) setPrice(id string, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.products[id]
	p.Price = price
	f.products[id] = p
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestService() (*Service, *fakeCatalog) {
	catalog := newFakeCatalog()
	return NewService(NewInMemoryRepository(), catalog), catalog
}

func TestCartLifecycle(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.GetCartByUser(testUserID); err != ErrCartNotFound {
		t.Fatalf("expected ErrCartNotFound before first add, got %v", err)
	}

	item, err := svc.AddToCart(testUserID, mugID, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Quantity != 2 || !almostEqual(item.ItemPrice, 20) {
		t.Fatalf("expected quantity 2 at line total 20, got %d / %v", item.Quantity, item.ItemPrice)
	}

	view, err := svc.GetCartByUser(testUserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !almostEqual(view.TotalPrice, 20) || view.TotalItems != 2 {
		t.Fatalf("expected totals 20/2, got %v/%d", view.TotalPrice, view.TotalItems)
	}

	// adding the same product again grows the existing line
	item, err = svc.AddToCart(testUserID, mugID, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if item.Quantity != 5 || !almostEqual(item.ItemPrice, 50) {
		t.Fatalf("expected quantity 5 at line total 50, got %d / %v", item.Quantity, item.ItemPrice)
	}
	view, _ = svc.GetCartByUser(testUserID)
	if len(view.Items) != 1 {
		t.Fatalf("expected one line after repeated add, got %d", len(view.Items))
	}

	// shrink the line to one unit at the cached per-unit rate
	item, err = svc.ChangeItemQuantity(testUserID, mugID, 1)
	if err != nil {
		t.Fatalf("change quantity: %v", err)
	}
	if item.Quantity != 1 || !almostEqual(item.ItemPrice, 10) {
		t.Fatalf("expected quantity 1 at line total 10, got %d / %v", item.Quantity, item.ItemPrice)
	}

	// removing the last line leaves an empty but resolvable cart
	if err := svc.RemoveFromCart(testUserID, mugID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	view, err = svc.GetCartByUser(testUserID)
	if err != nil {
		t.Fatalf("expected empty cart to resolve after remove, got %v", err)
	}
	if len(view.Items) != 0 || view.TotalItems != 0 || !almostEqual(view.TotalPrice, 0) {
		t.Fatalf("expected empty cart, got %+v", view)
	}

	// clearing deletes the cart itself
	if _, err := svc.AddToCart(testUserID, mugID, 1); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if err := svc.ClearCart(testUserID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := svc.GetCartByUser(testUserID); err != ErrCartNotFound {
		t.Fatalf("expected ErrCartNotFound after clear, got %v", err)
	}
}

func TestAddUsesCurrentPricePerAdd(t *testing.T) {
	svc, catalog := newTestService()

	if _, err := svc.AddToCart(testUserID, mugID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// price rises between the two adds; only the second add uses the new rate
	catalog.setPrice(mugID, 15)
	item, err := svc.AddToCart(testUserID, mugID, 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if item.Quantity != 3 || !almostEqual(item.ItemPrice, 35) {
		t.Fatalf("expected line total 2*10 + 1*15 = 35, got %v at quantity %d", item.ItemPrice, item.Quantity)
	}
}

func TestChangeQuantityKeepsCachedRate(t *testing.T) {
	svc, catalog := newTestService()

	if _, err := svc.AddToCart(testUserID, mugID, 4); err != nil {
		t.Fatalf("add: %v", err)
	}

	// the catalog price change must not leak into the rescale
	catalog.setPrice(mugID, 99)
	item, err := svc.ChangeItemQuantity(testUserID, mugID, 6)
	if err != nil {
		t.Fatalf("change quantity: %v", err)
	}
	if !almostEqual(item.ItemPrice, 60) {
		t.Fatalf("expected rescaled line total 60 at the cached rate, got %v", item.ItemPrice)
	}

	// quantity zero removes the line
	if _, err := svc.ChangeItemQuantity(testUserID, mugID, 0); err != nil {
		t.Fatalf("change to zero: %v", err)
	}
	view, err := svc.GetCartByUser(testUserID)
	if err != nil {
		t.Fatalf("get after zero: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected no lines after setting quantity to zero, got %d", len(view.Items))
	}
}

func TestDiscountedPriceWins(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.AddToCart(testUserID, candleID, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !almostEqual(item.ItemPrice, 40) {
		t.Fatalf("expected discounted rate 20 to price the line at 40, got %v", item.ItemPrice)
	}
}

func TestCartValidationAndNotFound(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddToCart(testUserID, mugID, 0); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity for zero, got %v", err)
	}
	if _, err := svc.AddToCart(testUserID, mugID, -3); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity for negative, got %v", err)
	}
	if _, err := svc.AddToCart(testUserID, "not-a-uuid", 1); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID for malformed product id, got %v", err)
	}
	if _, err := svc.AddToCart(testUserID, otherUserID, 1); err != product.ErrNotFound {
		t.Fatalf("expected catalog not-found for unknown product, got %v", err)
	}
	if _, err := svc.ChangeItemQuantity(testUserID, mugID, -1); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity for negative target, got %v", err)
	}
	if _, err := svc.ChangeItemQuantity(testUserID, mugID, 2); err != ErrCartNotFound {
		t.Fatalf("expected ErrCartNotFound without a cart, got %v", err)
	}
	if err := svc.RemoveFromCart(testUserID, mugID); err != ErrCartNotFound {
		t.Fatalf("expected ErrCartNotFound on remove without a cart, got %v", err)
	}
	if err := svc.ClearCart(testUserID); err != ErrCartNotFound {
		t.Fatalf("expected ErrCartNotFound on clear without a cart, got %v", err)
	}

	if _, err := svc.AddToCart(testUserID, mugID, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ChangeItemQuantity(testUserID, candleID, 2); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound for product not in cart, got %v", err)
	}
	if err := svc.RemoveFromCart(testUserID, candleID); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound on remove of absent product, got %v", err)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddToCart(testUserID, mugID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddToCart(otherUserID, candleID, 1); err != nil {
		t.Fatalf("add other: %v", err)
	}

	if err := svc.ClearCart(otherUserID); err != nil {
		t.Fatalf("clear other: %v", err)
	}
	view, err := svc.GetCartByUser(testUserID)
	if err != nil {
		t.Fatalf("first user's cart must survive the other user's clear: %v", err)
	}
	if view.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %d", view.TotalItems)
	}
}

func TestConcurrentAddsAccumulate(t *testing.T) {
	svc, _ := newTestService()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.AddToCart(testUserID, mugID, 1); err != nil {
				t.Errorf("concurrent add: %v", err)
			}
		}()
	}
	wg.Wait()

	view, err := svc.GetCartByUser(testUserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.TotalItems != workers || !almostEqual(view.TotalPrice, float64(workers)*10) {
		t.Fatalf("expected %d units at total %v, got %d / %v", workers, float64(workers)*10, view.TotalItems, view.TotalPrice)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected a single line for the product, got %d", len(view.Items))
	}
}
