package domain

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseItem is a single line of a purchase.
type PurchaseItem struct {
	ProductID string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Precio    float64 `json:"precio"`
	Talla     string  `json:"talla"`
	Cantidad  int     `json:"cantidad"`
	Imagen    string  `json:"imagen,omitempty"`
}

// Purchase represents a completed order. CustomerID is always resolved
// server-side from the customer email; purchases are immutable once recorded.
type Purchase struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	CustomerID uuid.UUID      `json:"cliente_id" db:"customer_id"`
	Email      string         `json:"cliente_email" db:"cliente_email"`
	Productos  []PurchaseItem `json:"productos" db:"productos"`
	Total      float64        `json:"total" db:"total"`
	Telefono   string         `json:"telefono" db:"telefono"`
	Direccion  string         `json:"direccion" db:"direccion"`
	Ubicacion  *string        `json:"ubicacion,omitempty" db:"ubicacion"`
	MetodoPago string         `json:"metodo_pago" db:"metodo_pago"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
