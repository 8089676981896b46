package product

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrUnknownType    = errors.New("product type not found")
	ErrInvalidTypeRef = errors.New("invalid product type id")
)

// TypeDirectory reports whether a product type reference resolves.
// Implemented by the producttype service.
type TypeDirectory interface {
	Exists(id string) (bool, error)
}

// ServiceInterface is the surface other packages (cart, order, mbti) depend on.
type ServiceInterface interface {
	GetByID(id string) (Product, error)
	ListByIDs(ids []string) ([]Product, error)
	List(f ListFilter) ([]Product, int, error)
}

type Service struct {
	repo  Repository
	types TypeDirectory
}

func NewService(repo Repository, types TypeDirectory) *Service {
	return &Service{repo: repo, types: types}
}

func (s *Service) List(f ListFilter) ([]Product, int, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	return s.repo.List(f)
}

func (s *Service) GetByID(id string) (Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Product{}, ErrInvalidID
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	return s.repo.ListByIDs(ids)
}

func (s *Service) Create(p Product) (Product, error) {
	if p.Name == "" || p.Description == "" || p.Price <= 0 || p.CountInStock < 0 {
		return Product{}, ErrMissingFields
	}
	if err := s.checkTypeRef(p.ProductTypeID); err != nil {
		return Product{}, err
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id string, p Product) (Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Product{}, ErrInvalidID
	}
	if err := s.checkTypeRef(p.ProductTypeID); err != nil {
		return Product{}, err
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return s.repo.Delete(id)
}

func (s *Service) checkTypeRef(typeID *string) error {
	if typeID == nil || *typeID == "" {
		return nil
	}
	if _, err := uuid.Parse(*typeID); err != nil {
		return ErrInvalidTypeRef
	}
	if s.types == nil {
		return nil
	}
	ok, err := s.types.Exists(*typeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownType
	}
	return nil
}
