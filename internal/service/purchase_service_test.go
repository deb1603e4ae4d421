package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mute-store/internal/domain"
	"mute-store/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPurchaseRepository struct {
	purchases []*domain.Purchase
}

func (m *mockPurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	m.purchases = append(m.purchases, purchase)
	return nil
}

func (m *mockPurchaseRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Purchase, error) {
	result := make([]*domain.Purchase, 0)
	for _, p := range m.purchases {
		if p.Email == email {
			result = append(result, p)
		}
	}
	return result, nil
}

func seedCustomer(t *testing.T, repo *mockCustomerRepository, email string) *domain.Customer {
	t.Helper()
	now := time.Now()
	customer := &domain.Customer{
		ID:        uuid.New(),
		Nombre:    "Cliente",
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), customer))
	return customer
}

func TestRecord_UnknownCustomer(t *testing.T) {
	purchaseRepo := &mockPurchaseRepository{}
	svc := NewPurchaseService(purchaseRepo, newMockCustomerRepository())

	_, err := svc.Record(context.Background(), PurchaseInput{
		Email:     "ghost@x.com",
		Productos: []domain.PurchaseItem{{Nombre: "Camisa", Precio: 10, Cantidad: 1}},
		Total:     10,
	})

	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
	assert.Empty(t, purchaseRepo.purchases, "no purchase may be written for an unknown customer")
}

func TestRecord_ResolvesCustomerServerSide(t *testing.T) {
	customerRepo := newMockCustomerRepository()
	customer := seedCustomer(t, customerRepo, "ana@x.com")
	purchaseRepo := &mockPurchaseRepository{}
	svc := NewPurchaseService(purchaseRepo, customerRepo)

	recorded, err := svc.Record(context.Background(), PurchaseInput{
		Email:      "ana@x.com",
		Productos:  []domain.PurchaseItem{{Nombre: "Camisa", Precio: 25.5, Talla: "M", Cantidad: 2}},
		Total:      51,
		Telefono:   "555-1234",
		Direccion:  "Calle 1",
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	assert.Equal(t, customer.ID, recorded.CustomerID)
	assert.Equal(t, "ana@x.com", recorded.Email)
	assert.NotEqual(t, uuid.Nil, recorded.ID)
	require.Len(t, purchaseRepo.purchases, 1)
	assert.Equal(t, recorded, purchaseRepo.purchases[0])
}

func TestRecord_CardDataNeverStored(t *testing.T) {
	customerRepo := newMockCustomerRepository()
	seedCustomer(t, customerRepo, "ana@x.com")
	purchaseRepo := &mockPurchaseRepository{}
	svc := NewPurchaseService(purchaseRepo, customerRepo)

	cardNumber := "4111111111111111"
	recorded, err := svc.Record(context.Background(), PurchaseInput{
		Email:      "ana@x.com",
		Productos:  []domain.PurchaseItem{{Nombre: "Camisa", Precio: 10, Cantidad: 1}},
		Total:      10,
		MetodoPago: "tarjeta",
		CreditCard: cardNumber,
		Tarjeta:    cardNumber,
	})
	require.NoError(t, err)

	// The stored record must not contain the card number in any field
	serialized, err := json.Marshal(recorded)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(serialized), cardNumber),
		"card data leaked into the stored purchase: %s", serialized)
	assert.Equal(t, "tarjeta", recorded.MetodoPago)
}

func TestListByEmail_EmptyHistory(t *testing.T) {
	svc := NewPurchaseService(&mockPurchaseRepository{}, newMockCustomerRepository())

	purchases, err := svc.ListByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.NotNil(t, purchases)
	assert.Empty(t, purchases)
}

func TestListByEmail_FiltersByCustomer(t *testing.T) {
	customerRepo := newMockCustomerRepository()
	seedCustomer(t, customerRepo, "ana@x.com")
	seedCustomer(t, customerRepo, "bea@x.com")
	purchaseRepo := &mockPurchaseRepository{}
	svc := NewPurchaseService(purchaseRepo, customerRepo)
	ctx := context.Background()

	for _, email := range []string{"ana@x.com", "ana@x.com", "bea@x.com"} {
		_, err := svc.Record(ctx, PurchaseInput{
			Email:     email,
			Productos: []domain.PurchaseItem{{Nombre: "Camisa", Precio: 10, Cantidad: 1}},
			Total:     10,
		})
		require.NoError(t, err)
	}

	purchases, err := svc.ListByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Len(t, purchases, 2)
	for _, p := range purchases {
		assert.Equal(t, "ana@x.com", p.Email)
	}
}
