package cart

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("product not found in cart")
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// Repository persists carts and their line items. Implementations report
// missing carts as ErrCartNotFound and missing line items as ErrItemNotFound.
type Repository interface {
	GetByUser(userID string) (Cart, []Item, error)
	CreateCart(userID, now string) (Cart, error)
	GetItem(itemID string) (Item, error)
	FindItem(cartID, productID string) (Item, error)
	// SaveItem inserts the item when its ID is empty and updates it
	// otherwise, touching the parent cart's updated_at either way.
	SaveItem(item Item, now string) (Item, error)
	DeleteItem(cartID, productID, now string) error
	// Clear removes every line item and then the cart row itself.
	Clear(cartID string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]Cart   // keyed by userID
	items map[string][]Item // keyed by cartID
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		carts: make(map[string]Cart),
		items: make(map[string][]Item),
	}
}

func (r *InMemoryRepository) GetByUser(userID string) (Cart, []Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[userID]
	if !ok {
		return Cart{}, nil, ErrCartNotFound
	}
	items := make([]Item, len(r.items[c.ID]))
	copy(items, r.items[c.ID])
	return c, items, nil
}

func (r *InMemoryRepository) CreateCart(userID, now string) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	r.carts[userID] = c
	return c, nil
}

func (r *InMemoryRepository) GetItem(itemID string) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, items := range r.items {
		for _, it := range items {
			if it.ID == itemID {
				return it, nil
			}
		}
	}
	return Item{}, ErrItemNotFound
}

func (r *InMemoryRepository) FindItem(cartID, productID string) (Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items[cartID] {
		if it.ProductID == productID {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (r *InMemoryRepository) SaveItem(item Item, now string) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
		item.CreatedAt = now
		item.UpdatedAt = now
		r.items[item.CartID] = append(r.items[item.CartID], item)
	} else {
		found := false
		for i, it := range r.items[item.CartID] {
			if it.ID == item.ID {
				item.UpdatedAt = now
				r.items[item.CartID][i] = item
				found = true
				break
			}
		}
		if !found {
			return Item{}, ErrItemNotFound
		}
	}
	r.touchCart(item.CartID, now)
	return item, nil
}

func (r *InMemoryRepository) DeleteItem(cartID, productID, now string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items[cartID] {
		if it.ProductID == productID {
			r.items[cartID] = append(r.items[cartID][:i], r.items[cartID][i+1:]...)
			r.touchCart(cartID, now)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) Clear(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, cartID)
	for userID, c := range r.carts {
		if c.ID == cartID {
			delete(r.carts, userID)
			return nil
		}
	}
	return ErrCartNotFound
}

func (r *InMemoryRepository) touchCart(cartID, now string) {
	for userID, c := range r.carts {
		if c.ID == cartID {
			c.UpdatedAt = now
			r.carts[userID] = c
			return
		}
	}
}
