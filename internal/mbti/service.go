package mbti

import (
	"github.com/hngoc-dev/gift-shop-backend/internal/product"
)

type Service struct {
	products product.ServiceInterface
}

func NewService(products product.ServiceInterface) *Service {
	return &Service{products: products}
}

type Result struct {
	Type     string            `json:"mbtiType"`
	Products []product.Product `json:"recommendedProducts"`
}

// Evaluate scores the answers and pairs the resulting type with gift
// suggestions from the catalog.
func (s *Service) Evaluate(answers []string, limit int) (Result, error) {
	typ, err := Score(answers)
	if err != nil {
		return Result{}, err
	}
	if limit <= 0 {
		limit = 8
	}
	products, _, err := s.products.List(product.ListFilter{MBTI: []string{typ}, Limit: limit})
	if err != nil {
		return Result{}, err
	}
	return Result{Type: typ, Products: products}, nil
}
