package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mute-store/internal/auth"
	"mute-store/internal/domain"
	"mute-store/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// CustomerService defines the interface for customer business logic
type CustomerService interface {
	Register(ctx context.Context, nombre, email, password string, telefono, direccion *string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	SyncExternal(ctx context.Context, externalID, email, nombre string) (created bool, err error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	tokens       *auth.TokenManager
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository, tokens *auth.TokenManager) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		tokens:       tokens,
	}
}

// Register creates a new customer with a hashed password and issues an
// identity token. Email uniqueness is ultimately enforced by the database;
// the pre-check only produces a friendlier error without an insert round-trip.
func (s *customerService) Register(ctx context.Context, nombre, email, password string, telefono, direccion *string) (string, error) {
	existing, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		return "", fmt.Errorf("failed to check existing customer: %w", err)
	}
	if existing != nil {
		return "", repository.ErrCustomerAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	customer := &domain.Customer{
		ID:           uuid.New(),
		Nombre:       nombre,
		Email:        email,
		PasswordHash: hashedPassword,
		Telefono:     telefono,
		Direccion:    direccion,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrCustomerAlreadyExists) {
			return "", err
		}
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	token, err := s.tokens.Issue(customer.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// Login authenticates a customer and issues an identity token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *customerService) Login(ctx context.Context, email, password string) (string, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find customer: %w", err)
	}

	if !auth.CheckPassword(password, customer.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(customer.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// GetByEmail retrieves a customer profile by email
func (s *customerService) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// SyncExternal syncs a customer record from the external identity provider.
// The call is idempotent: the first sync creates the record, later syncs
// report it as already existing.
func (s *customerService) SyncExternal(ctx context.Context, externalID, email, nombre string) (bool, error) {
	created, err := s.customerRepo.UpsertByExternalID(ctx, externalID, email, nombre)
	if err != nil {
		return false, fmt.Errorf("failed to sync external customer: %w", err)
	}
	return created, nil
}
