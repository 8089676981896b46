package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hngoc-dev/gift-shop-backend/internal/product"
)

// Catalog is the slice of the product service the cart needs: price and
// display lookups at add time and at read time.
type Catalog interface {
	GetByID(id string) (product.Product, error)
	ListByIDs(ids []string) ([]product.Product, error)
}

// ServiceInterface is consumed by the order package when it snapshots a cart
// into an order.
type ServiceInterface interface {
	GetCartByUser(userID string) (View, error)
	ClearCart(userID string) error
}

type Service struct {
	repo    Repository
	catalog Catalog

	// userLocks serializes cart mutations per user so that concurrent adds
	// for the same account interleave as whole operations.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewService(repo Repository, catalog Catalog) *Service {
	return &Service{repo: repo, catalog: catalog, userLocks: make(map[string]*sync.Mutex)}
}

func (s *Service) lockUser(userID string) func() {
	s.mu.Lock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// GetCartByUser resolves the user's cart with product fields and totals
// recomputed from the stored line items.
func (s *Service) GetCartByUser(userID string) (View, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return View{}, ErrInvalidID
	}
	c, items, err := s.repo.GetByUser(userID)
	if err != nil {
		return View{}, err
	}
	views, err := s.resolveItems(items)
	if err != nil {
		return View{}, err
	}
	v := View{Cart: c, Items: views}
	v.TotalPrice, v.TotalItems = totals(views)
	return v, nil
}

// AddToCart adds quantity units of a product to the user's cart, creating the
// cart on first use. Adding a product that is already in the cart increases
// the line quantity and grows the cached line total by quantity times the
// product's current unit price; the amounts cached by earlier adds are kept
// as written.
func (s *Service) AddToCart(userID, productID string, quantity int) (Item, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Item{}, ErrInvalidID
	}
	if _, err := uuid.Parse(productID); err != nil {
		return Item{}, ErrInvalidID
	}
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}

	unlock := s.lockUser(userID)
	defer unlock()

	p, err := s.catalog.GetByID(productID)
	if err != nil {
		return Item{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	c, _, err := s.repo.GetByUser(userID)
	if err == ErrCartNotFound {
		c, err = s.repo.CreateCart(userID, now)
	}
	if err != nil {
		return Item{}, err
	}

	item, err := s.repo.FindItem(c.ID, productID)
	if err == ErrItemNotFound {
		item = Item{CartID: c.ID, ProductID: productID}
	} else if err != nil {
		return Item{}, err
	}
	item.Quantity += quantity
	item.ItemPrice += p.UnitPrice() * float64(quantity)
	return s.repo.SaveItem(item, now)
}

// ChangeItemQuantity sets the line for productID to newQuantity. The cached
// line total is rescaled from its own stored amount, (itemPrice / oldQuantity)
// * newQuantity, so the per-unit rate the line was written at is preserved and
// the catalog is never consulted. A newQuantity of zero removes the line.
func (s *Service) ChangeItemQuantity(userID, productID string, newQuantity int) (Item, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Item{}, ErrInvalidID
	}
	if _, err := uuid.Parse(productID); err != nil {
		return Item{}, ErrInvalidID
	}
	if newQuantity < 0 {
		return Item{}, ErrInvalidQuantity
	}

	unlock := s.lockUser(userID)
	defer unlock()

	c, _, err := s.repo.GetByUser(userID)
	if err != nil {
		return Item{}, err
	}
	item, err := s.repo.FindItem(c.ID, productID)
	if err != nil {
		return Item{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if newQuantity == 0 {
		return Item{}, s.repo.DeleteItem(c.ID, productID, now)
	}
	item.ItemPrice = item.ItemPrice / float64(item.Quantity) * float64(newQuantity)
	item.Quantity = newQuantity
	return s.repo.SaveItem(item, now)
}

// RemoveFromCart deletes one product line. The cart row survives even when the
// last line is removed, so a subsequent read resolves an empty cart.
func (s *Service) RemoveFromCart(userID, productID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrInvalidID
	}
	if _, err := uuid.Parse(productID); err != nil {
		return ErrInvalidID
	}

	unlock := s.lockUser(userID)
	defer unlock()

	c, _, err := s.repo.GetByUser(userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(c.ID, productID, time.Now().UTC().Format(time.RFC3339))
}

// ClearCart deletes the user's cart and every line in it. After a clear the
// user has no cart at all until the next add, and reads report it missing.
func (s *Service) ClearCart(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return ErrInvalidID
	}

	unlock := s.lockUser(userID)
	defer unlock()

	c, _, err := s.repo.GetByUser(userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(c.ID)
}

// GetCartItem looks up a single line item by its own id.
func (s *Service) GetCartItem(itemID string) (ItemView, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return ItemView{}, ErrInvalidID
	}
	item, err := s.repo.GetItem(itemID)
	if err != nil {
		return ItemView{}, err
	}
	views, err := s.resolveItems([]Item{item})
	if err != nil {
		return ItemView{}, err
	}
	return views[0], nil
}

func (s *Service) resolveItems(items []Item) ([]ItemView, error) {
	views := make([]ItemView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.catalog.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, it := range items {
		v := ItemView{Item: it}
		if p, ok := byID[it.ProductID]; ok {
			v.ProductName = p.Name
			v.UnitPrice = p.UnitPrice()
			v.ProductImagePath = p.FirstImage()
		}
		views = append(views, v)
	}
	return views, nil
}
