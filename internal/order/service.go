package order

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hngoc-dev/gift-shop-backend/internal/cart"
	"github.com/hngoc-dev/gift-shop-backend/internal/orderstatus"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingFields = errors.New("address, delivery method and payment method are required")
	ErrUnknownStatus = errors.New("unknown order status")
	ErrNotOwner      = errors.New("order does not belong to this user")
)

// AddressBook verifies that a shipping address exists and belongs to the
// ordering user. Implemented by the address service.
type AddressBook interface {
	Owned(addressID, userID string) (bool, error)
}

type Service struct {
	repo      Repository
	carts     cart.ServiceInterface
	statuses  orderstatus.ServiceInterface
	addresses AddressBook
}

func NewService(repo Repository, carts cart.ServiceInterface, statuses orderstatus.ServiceInterface, addresses AddressBook) *Service {
	return &Service{repo: repo, carts: carts, statuses: statuses, addresses: addresses}
}

type CheckoutInput struct {
	AddressID      string
	DeliveryMethod string
	PaymentMethod  string
}

// Checkout snapshots the user's cart into a new pending order and clears the
// cart. Each cart line becomes a detail with its cached line total; the order
// total is the sum of those details, so it matches what the cart displayed at
// the moment of checkout.
func (s *Service) Checkout(userID string, in CheckoutInput) (Order, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Order{}, ErrInvalidID
	}
	if in.AddressID == "" || in.DeliveryMethod == "" || in.PaymentMethod == "" {
		return Order{}, ErrMissingFields
	}
	if _, err := uuid.Parse(in.AddressID); err != nil {
		return Order{}, ErrInvalidID
	}

	owned, err := s.addresses.Owned(in.AddressID, userID)
	if err != nil {
		return Order{}, err
	}
	if !owned {
		return Order{}, ErrNotOwner
	}

	view, err := s.carts.GetCartByUser(userID)
	if err != nil {
		return Order{}, err
	}
	if len(view.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	pending, err := s.statuses.GetByName(orderstatus.StatusPending)
	if err != nil {
		return Order{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	o := Order{
		UserID:         userID,
		AddressID:      in.AddressID,
		StatusID:       pending.ID,
		StatusName:     pending.Name,
		DeliveryMethod: in.DeliveryMethod,
		PaymentMethod:  in.PaymentMethod,
		OrderDate:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, it := range view.Items {
		o.Details = append(o.Details, Detail{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			ItemPrice: it.ItemPrice,
		})
		o.TotalPrice += it.ItemPrice
	}

	created, err := s.repo.Create(o)
	if err != nil {
		return Order{}, err
	}
	if err := s.carts.ClearCart(userID); err != nil {
		return Order{}, err
	}
	return created, nil
}

func (s *Service) List(filter ListFilter) ([]Order, int, error) {
	if filter.StatusID != "" {
		if _, err := uuid.Parse(filter.StatusID); err != nil {
			return nil, 0, ErrInvalidID
		}
	}
	return s.repo.List(filter)
}

func (s *Service) ListByUser(userID string) ([]Order, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrInvalidID
	}
	return s.repo.ListByUser(userID)
}

// GetByID returns the order. Non-admin callers only see their own orders.
func (s *Service) GetByID(id, userID string, isAdmin bool) (Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Order{}, ErrInvalidID
	}
	o, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !isAdmin && o.UserID != userID {
		return Order{}, ErrNotOwner
	}
	return o, nil
}

// UpdateStatus moves the order to the given status. Reaching Completed stamps
// the delivered date.
func (s *Service) UpdateStatus(id, statusID string) (Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Order{}, ErrInvalidID
	}
	st, err := s.statuses.GetByID(statusID)
	if err != nil {
		return Order{}, ErrUnknownStatus
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var delivered *string
	if st.Name == orderstatus.StatusCompleted {
		delivered = &now
	}
	o, err := s.repo.UpdateStatus(id, st.ID, delivered, now)
	if err != nil {
		return Order{}, err
	}
	o.StatusName = st.Name
	return o, nil
}
