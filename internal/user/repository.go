package user

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidID          = errors.New("invalid user id")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
)

type Repository interface {
	List(f ListFilter) ([]User, int, error)
	GetByID(id string) (User, error)
	GetByEmail(email string) (User, error)
	Create(u User) (User, error)
	Update(id string, u User) (User, error)
	SetRefreshToken(id, token string) error
	Delete(id string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users []User
}

func NewInMemoryRepository(seed []User) *InMemoryRepository {
	r := &InMemoryRepository{users: make([]User, 0, len(seed))}
	for _, u := range seed {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		r.users = append(r.users, u)
	}
	return r
}

func (r *InMemoryRepository) List(f ListFilter) ([]User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]User, 0, len(r.users))
	for _, u := range r.users {
		if f.Fullname != "" && !strings.Contains(strings.ToLower(u.Fullname), strings.ToLower(f.Fullname)) {
			continue
		}
		if f.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Email)) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		matched = append(matched, u)
	}

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start >= total {
		return []User{}, total, nil
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	out := make([]User, end-start)
	copy(out, matched[start:end])
	return out, total, nil
}

func (r *InMemoryRepository) GetByID(id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryRepository) Update(id string, upd User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			u.Fullname = upd.Fullname
			u.Email = upd.Email
			u.Phone = upd.Phone
			u.Gender = upd.Gender
			u.DateOfBirth = upd.DateOfBirth
			if upd.Password != "" {
				u.Password = upd.Password
			}
			if upd.AvatarPath != nil {
				u.AvatarPath = upd.AvatarPath
			}
			if upd.UpdatedAt != "" {
				u.UpdatedAt = upd.UpdatedAt
			}
			r.users[i] = u
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) SetRefreshToken(id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].RefreshToken = token
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
