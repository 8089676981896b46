package producttype

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("product type not found")
	ErrInvalidID = errors.New("invalid product type id")
	ErrConflict  = errors.New("product type already exists")
)

type Repository interface {
	List() ([]ProductType, error)
	GetByID(id string) (ProductType, error)
	GetByName(name string) (ProductType, error)
	Create(t ProductType) (ProductType, error)
	Update(id string, t ProductType) (ProductType, error)
	Delete(id string) error
}

// InMemoryRepository for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []ProductType
}

func NewInMemoryRepository(seed []ProductType) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]ProductType, 0, len(seed))}
	for _, t := range seed {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		r.storage = append(r.storage, t)
	}
	return r
}

func (r *InMemoryRepository) List() ([]ProductType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ProductType, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (ProductType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.storage {
		if t.ID == id {
			return t, nil
		}
	}
	return ProductType{}, ErrNotFound
}

func (r *InMemoryRepository) GetByName(name string) (ProductType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.storage {
		if t.Name == name {
			return t, nil
		}
	}
	return ProductType{}, ErrNotFound
}

func (r *InMemoryRepository) Create(t ProductType) (ProductType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	r.storage = append(r.storage, t)
	return t, nil
}

func (r *InMemoryRepository) Update(id string, upd ProductType) (ProductType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Name = upd.Name
			if upd.UpdatedAt != "" {
				r.storage[i].UpdatedAt = upd.UpdatedAt
			}
			return r.storage[i], nil
		}
	}
	return ProductType{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
