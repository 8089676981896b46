package order

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrInvalidID = errors.New("invalid order id")
)

type Repository interface {
	// List returns the filtered page plus the unpaginated match count.
	List(filter ListFilter) ([]Order, int, error)
	ListByUser(userID string) ([]Order, error)
	GetByID(id string) (Order, error)
	// Create persists the order and its details atomically.
	Create(o Order) (Order, error)
	UpdateStatus(id, statusID string, deliveredDate *string, now string) (Order, error)
}

// InMemoryRepository for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) List(filter ListFilter) ([]Order, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Order, 0)
	for _, o := range r.storage {
		if filter.StatusID != "" && o.StatusID != filter.StatusID {
			continue
		}
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		if filter.DateFrom != "" && o.OrderDate < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && o.OrderDate > filter.DateTo {
			continue
		}
		matched = append(matched, o)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].OrderDate > matched[j].OrderDate })

	total := len(matched)
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= total {
		return []Order{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *InMemoryRepository) ListByUser(userID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range r.storage {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate > out[j].OrderDate })
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.storage {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = uuid.NewString()
	for i := range o.Details {
		o.Details[i].ID = uuid.NewString()
		o.Details[i].OrderID = o.ID
	}
	r.storage = append(r.storage, o)
	return o, nil
}

func (r *InMemoryRepository) UpdateStatus(id, statusID string, deliveredDate *string, now string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].StatusID = statusID
			r.storage[i].StatusName = ""
			if deliveredDate != nil {
				r.storage[i].DeliveredDate = deliveredDate
			}
			r.storage[i].UpdatedAt = now
			return r.storage[i], nil
		}
	}
	return Order{}, ErrNotFound
}
