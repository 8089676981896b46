package address

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingFields = errors.New("receiver, phone and location fields are required")
	ErrNotOwner      = errors.New("address does not belong to this user")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByUser(userID string) ([]Address, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidID
	}
	return s.repo.ListByUser(userID)
}

func (s *Service) GetByID(id, userID string) (Address, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Address{}, ErrInvalidID
	}
	a, err := s.repo.GetByID(id)
	if err != nil {
		return Address{}, err
	}
	if a.UserID != userID {
		return Address{}, ErrNotOwner
	}
	return a, nil
}

// Owned implements the order package's AddressBook.
func (s *Service) Owned(addressID, userID string) (bool, error) {
	_, err := s.GetByID(addressID, userID)
	if err == ErrNotFound || err == ErrNotOwner || err == ErrInvalidID {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create stores a new address. The user's first address becomes the default
// automatically; an explicit default demotes the previous one.
func (s *Service) Create(userID string, a Address) (Address, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Address{}, ErrInvalidID
	}
	if err := validate(a); err != nil {
		return Address{}, err
	}

	existing, err := s.repo.ListByUser(userID)
	if err != nil {
		return Address{}, err
	}
	for _, other := range existing {
		if sameLocation(other, a) {
			return Address{}, ErrDuplicate
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if len(existing) == 0 {
		a.IsDefault = true
	} else if a.IsDefault {
		if err := s.repo.ClearDefault(userID, now); err != nil {
			return Address{}, err
		}
	}

	a.UserID = userID
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.repo.Create(a)
}

func (s *Service) Update(id, userID string, a Address) (Address, error) {
	current, err := s.GetByID(id, userID)
	if err != nil {
		return Address{}, err
	}
	if err := validate(a); err != nil {
		return Address{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if a.IsDefault && !current.IsDefault {
		if err := s.repo.ClearDefault(userID, now); err != nil {
			return Address{}, err
		}
	}
	a.UpdatedAt = now
	return s.repo.Update(id, a)
}

// SetDefault marks one address as the user's default and demotes the rest.
func (s *Service) SetDefault(id, userID string) (Address, error) {
	a, err := s.GetByID(id, userID)
	if err != nil {
		return Address{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.ClearDefault(userID, now); err != nil {
		return Address{}, err
	}
	a.IsDefault = true
	a.UpdatedAt = now
	return s.repo.Update(id, a)
}

func (s *Service) Delete(id, userID string) error {
	if _, err := s.GetByID(id, userID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func validate(a Address) error {
	if a.Receiver == "" || a.Phone == "" || a.Province == "" || a.District == "" || a.Ward == "" || a.Detail == "" {
		return ErrMissingFields
	}
	return nil
}
