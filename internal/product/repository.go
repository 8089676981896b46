package product

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrInvalidID = errors.New("invalid product id")
)

type Repository interface {
	List(f ListFilter) ([]Product, int, error)
	GetByID(id string) (Product, error)
	ListByIDs(ids []string) ([]Product, error)
	Create(p Product) (Product, error)
	Update(id string, p Product) (Product, error)
	Delete(id string) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.storage = append(r.storage, p)
	}
	return r
}

func matchesFilter(p Product, f ListFilter) bool {
	if len(f.Traits) == 0 && len(f.MBTI) == 0 && f.Search == "" {
		return true
	}
	for _, want := range f.Traits {
		for _, have := range p.Traits {
			if have == want {
				return true
			}
		}
	}
	for _, want := range f.MBTI {
		for _, have := range p.RecommendedTypes {
			if have == want {
				return true
			}
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			return true
		}
		for _, kw := range p.Keywords {
			if strings.Contains(strings.ToLower(kw), needle) {
				return true
			}
		}
	}
	return false
}

func (r *InMemoryRepository) List(f ListFilter) ([]Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if matchesFilter(p, f) {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch f.SortBy {
		case "price":
			less = matched[i].UnitPrice() < matched[j].UnitPrice()
		case "productName":
			less = matched[i].Name < matched[j].Name
		default:
			less = matched[i].CreatedAt < matched[j].CreatedAt
		}
		if f.Desc {
			return !less
		}
		return less
	})

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return []Product{}, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	out := make([]Product, end-start)
	copy(out, matched[start:end])
	return out, total, nil
}

func (r *InMemoryRepository) GetByID(id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListByIDs(ids []string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		for _, p := range r.storage {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id string, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
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
