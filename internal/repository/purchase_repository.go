package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mute-store/internal/domain"
)

// PurchaseRepository defines the interface for purchase data access.
// The ledger is append-only: there is no update or delete operation.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	ListByEmail(ctx context.Context, email string) ([]*domain.Purchase, error)
}

type purchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new instance of PurchaseRepository
func NewPurchaseRepository(db *sql.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create appends a purchase using parameterized queries. Line items are
// stored as a JSONB document alongside the order row.
func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	items, err := json.Marshal(purchase.Productos)
	if err != nil {
		return fmt.Errorf("failed to encode purchase items: %w", err)
	}

	query := `
		INSERT INTO purchases (id, customer_id, cliente_email, productos, total, telefono, direccion, ubicacion, metodo_pago, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		purchase.ID,
		purchase.CustomerID,
		purchase.Email,
		items,
		purchase.Total,
		purchase.Telefono,
		purchase.Direccion,
		purchase.Ubicacion,
		purchase.MetodoPago,
		purchase.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	return nil
}

// ListByEmail retrieves all purchases for a customer email, newest first.
// An empty result is returned as an empty slice, not an error.
func (r *purchaseRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Purchase, error) {
	query := `
		SELECT id, customer_id, cliente_email, productos, total, telefono, direccion, ubicacion, metodo_pago, created_at
		FROM purchases
		WHERE cliente_email = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []*domain.Purchase{}
	for rows.Next() {
		purchase := &domain.Purchase{}
		var items []byte

		err := rows.Scan(
			&purchase.ID,
			&purchase.CustomerID,
			&purchase.Email,
			&items,
			&purchase.Total,
			&purchase.Telefono,
			&purchase.Direccion,
			&purchase.Ubicacion,
			&purchase.MetodoPago,
			&purchase.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}

		if err := json.Unmarshal(items, &purchase.Productos); err != nil {
			return nil, fmt.Errorf("failed to decode purchase items: %w", err)
		}

		purchases = append(purchases, purchase)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return purchases, nil
}
