package address

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("address not found")
	ErrInvalidID = errors.New("invalid address id")
	ErrDuplicate = errors.New("address already exists")
)

type Repository interface {
	ListByUser(userID string) ([]Address, error)
	GetByID(id string) (Address, error)
	Create(a Address) (Address, error)
	Update(id string, a Address) (Address, error)
	// ClearDefault unsets the default flag on every address of the user.
	ClearDefault(userID, now string) error
	Delete(id string) error
}

// InMemoryRepository for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Address
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) ListByUser(userID string) ([]Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Address, 0)
	for _, a := range r.storage {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id string) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.storage {
		if a.ID == id {
			return a, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) Create(a Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	r.storage = append(r.storage, a)
	return a, nil
}

func (r *InMemoryRepository) Update(id string, upd Address) (Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			upd.ID = id
			upd.UserID = r.storage[i].UserID
			upd.CreatedAt = r.storage[i].CreatedAt
			r.storage[i] = upd
			return upd, nil
		}
	}
	return Address{}, ErrNotFound
}

func (r *InMemoryRepository) ClearDefault(userID, now string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].UserID == userID && r.storage[i].IsDefault {
			r.storage[i].IsDefault = false
			r.storage[i].UpdatedAt = now
		}
	}
	return nil
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
