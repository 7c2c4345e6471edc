package order

import (
	"errors"
	"time"
)

var (
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidItem       = errors.New("order item is invalid")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

type ServiceInterface interface {
	CreateCOD(userID int, email string, items []Item) (Order, error)
	CreatePendingPayment(userID int, email string, items []Item) (Order, error)
	GetByID(id string) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListAdmin(f Filter) ([]Order, error)
	SetStatus(id string, to Status) (Order, error)
	ConfirmPayment(orderID string, sessionID string) (Order, error)
	Stats() (Stats, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	for _, it := range items {
		if it.Name == "" || it.Qty < 1 || it.Price < 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

func (s *Service) create(userID int, email string, items []Item, method string, status Status) (Order, error) {
	if err := validateItems(items); err != nil {
		return Order{}, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.Create(Order{
		UserID:        userID,
		Email:         email,
		Items:         items,
		Total:         TotalOf(items),
		Currency:      CurrencyEUR,
		PaymentMethod: method,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func (s *Service) CreateCOD(userID int, email string, items []Item) (Order, error) {
	return s.create(userID, email, items, PaymentCOD, StatusNew)
}

// CreatePendingPayment records an order awaiting gateway confirmation.
// The order id goes into the checkout session metadata so the webhook
// can find its way back.
func (s *Service) CreatePendingPayment(userID int, email string, items []Item) (Order, error) {
	return s.create(userID, email, items, PaymentStripe, StatusPendingPayment)
}

func (s *Service) GetByID(id string) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.List(Filter{UserID: userID})
}

func (s *Service) ListAdmin(f Filter) ([]Order, error) {
	return s.repo.List(f)
}

func (s *Service) SetStatus(id string, to Status) (Order, error) {
	if !to.Valid() {
		return Order{}, ErrInvalidStatus
	}
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(ord.Status, to) {
		return Order{}, ErrInvalidTransition
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.SetStatus(id, to, now)
}

// ConfirmPayment applies a gateway payment confirmation. Redeliveries
// converge on the same result; shipped and cancelled orders are left
// untouched and returned as-is.
func (s *Service) ConfirmPayment(orderID string, sessionID string) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.MarkPaid(orderID, sessionID, now)
}

func (s *Service) Stats() (Stats, error) {
	orders, err := s.repo.List(Filter{})
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(orders)}
	for _, ord := range orders {
		switch ord.Status {
		case StatusPaid:
			st.Paid++
			st.Revenue += ord.Total
		case StatusPendingPayment:
			st.PendingPayment++
		case StatusNew:
			if ord.PaymentMethod == PaymentCOD {
				st.CODNew++
			}
		}
	}
	return st, nil
}
