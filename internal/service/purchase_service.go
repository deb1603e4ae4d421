package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mute-store/internal/domain"
	"mute-store/internal/repository"

	"github.com/google/uuid"
)

// PurchaseInput carries an inbound checkout request. CreditCard and Tarjeta
// capture card data a client may send; Record discards them unconditionally,
// they must never reach storage.
type PurchaseInput struct {
	Email      string
	Productos  []domain.PurchaseItem
	Total      float64
	Telefono   string
	Direccion  string
	Ubicacion  *string
	MetodoPago string
	CreditCard string
	Tarjeta    string
}

// PurchaseService defines the interface for purchase business logic
type PurchaseService interface {
	Record(ctx context.Context, input PurchaseInput) (*domain.Purchase, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	customerRepo repository.CustomerRepository
}

// NewPurchaseService creates a new instance of PurchaseService
func NewPurchaseService(purchaseRepo repository.PurchaseRepository, customerRepo repository.CustomerRepository) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
	}
}

// Record resolves the customer by email and durably appends one purchase.
// The customer id is always re-derived server-side; any id or card data
// supplied by the client is ignored. No write happens when the customer
// does not exist.
func (s *purchaseService) Record(ctx context.Context, input PurchaseInput) (*domain.Purchase, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	// Card fields from input are intentionally not copied.
	purchase := &domain.Purchase{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Email:      customer.Email,
		Productos:  input.Productos,
		Total:      input.Total,
		Telefono:   input.Telefono,
		Direccion:  input.Direccion,
		Ubicacion:  input.Ubicacion,
		MetodoPago: input.MetodoPago,
		CreatedAt:  time.Now(),
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	return purchase, nil
}

// ListByEmail retrieves all purchases for a customer email. An empty history
// is a valid result.
func (s *purchaseService) ListByEmail(ctx context.Context, email string) ([]*domain.Purchase, error) {
	purchases, err := s.purchaseRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return purchases, nil
}
