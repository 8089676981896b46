package producttype

import (
	"errors"

	"github.com/google/uuid"
)

var ErrMissingName = errors.New("product type name is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]ProductType, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (ProductType, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProductType{}, ErrInvalidID
	}
	return s.repo.GetByID(id)
}

// Exists implements the product package's TypeDirectory.
func (s *Service) Exists(id string) (bool, error) {
	_, err := s.GetByID(id)
	if err == ErrNotFound || err == ErrInvalidID {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Create(t ProductType) (ProductType, error) {
	if t.Name == "" {
		return ProductType{}, ErrMissingName
	}
	if _, err := s.repo.GetByName(t.Name); err == nil {
		return ProductType{}, ErrConflict
	} else if err != ErrNotFound {
		return ProductType{}, err
	}
	return s.repo.Create(t)
}

func (s *Service) Update(id string, t ProductType) (ProductType, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProductType{}, ErrInvalidID
	}
	if t.Name == "" {
		return ProductType{}, ErrMissingName
	}
	if existing, err := s.repo.GetByName(t.Name); err == nil && existing.ID != id {
		return ProductType{}, ErrConflict
	} else if err != nil && err != ErrNotFound {
		return ProductType{}, err
	}
	return s.repo.Update(id, t)
}

func (s *Service) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return s.repo.Delete(id)
}
