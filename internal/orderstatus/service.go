package orderstatus

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingName = errors.New("order status name is required")

// ServiceInterface is the slice the order package depends on.
type ServiceInterface interface {
	GetByID(id string) (Status, error)
	GetByName(name string) (Status, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Status, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Status, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Status{}, ErrInvalidID
	}
	return s.repo.GetByID(id)
}

func (s *Service) GetByName(name string) (Status, error) {
	return s.repo.GetByName(name)
}

func (s *Service) Create(st Status) (Status, error) {
	if st.Name == "" {
		return Status{}, ErrMissingName
	}
	if _, err := s.repo.GetByName(st.Name); err == nil {
		return Status{}, ErrConflict
	} else if err != ErrNotFound {
		return Status{}, err
	}
	return s.repo.Create(st)
}

func (s *Service) Update(id string, st Status) (Status, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Status{}, ErrInvalidID
	}
	if st.Name == "" {
		return Status{}, ErrMissingName
	}
	if existing, err := s.repo.GetByName(st.Name); err == nil && existing.ID != id {
		return Status{}, ErrConflict
	} else if err != nil && err != ErrNotFound {
		return Status{}, err
	}
	return s.repo.Update(id, st)
}

func (s *Service) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return s.repo.Delete(id)
}

// Seed inserts the default workflow statuses that are not present yet.
func (s *Service) Seed() error {
	now := time.Now().UTC().Format(time.RFC3339)
	for _, name := range DefaultNames {
		if _, err := s.repo.GetByName(name); err == nil {
			continue
		} else if err != ErrNotFound {
			return err
		}
		if _, err := s.repo.Create(Status{Name: name, CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
	}
	return nil
}
