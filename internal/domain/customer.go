package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a store customer. PasswordHash is only set for
// customers registered locally; customers synced from the external identity
// provider have ExternalID set instead.
type Customer struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Nombre       string    `json:"nombre" db:"nombre"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Telefono     *string   `json:"telefono,omitempty" db:"telefono"`
	Direccion    *string   `json:"direccion,omitempty" db:"direccion"`
	ExternalID   *string   `json:"external_id,omitempty" db:"external_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
