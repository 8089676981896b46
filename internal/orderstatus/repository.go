package orderstatus

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("order status not found")
	ErrInvalidID = errors.New("invalid order status id")
	ErrConflict  = errors.New("order status already exists")
)

type Repository interface {
	List() ([]Status, error)
	GetByID(id string) (Status, error)
	GetByName(name string) (Status, error)
	Create(s Status) (Status, error)
	Update(id string, s Status) (Status, error)
	Delete(id string) error
}

// InMemoryRepository for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Status
}

func NewInMemoryRepository(seed []Status) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Status, 0, len(seed))}
	for _, s := range seed {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		r.storage = append(r.storage, s)
	}
	return r
}

func (r *InMemoryRepository) List() ([]Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Status, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.storage {
		if s.ID == id {
			return s, nil
		}
	}
	return Status{}, ErrNotFound
}

func (r *InMemoryRepository) GetByName(name string) (Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.storage {
		if s.Name == name {
			return s, nil
		}
	}
	return Status{}, ErrNotFound
}

func (r *InMemoryRepository) Create(s Status) (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	r.storage = append(r.storage, s)
	return s, nil
}

func (r *InMemoryRepository) Update(id string, upd Status) (Status, error) {
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
	return Status{}, ErrNotFound
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
