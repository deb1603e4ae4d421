package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item. The catalog is managed by an external
// collaborator; this service only reads it.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Nombre      string    `json:"nombre" db:"nombre"`
	Descripcion string    `json:"descripcion" db:"descripcion"`
	Precio      float64   `json:"precio" db:"precio"`
	Stock       int       `json:"stock" db:"stock"`
	Imagen      string    `json:"imagen" db:"imagen"`
	Categoria   string    `json:"categoria" db:"categoria"`
	Marca       string    `json:"marca" db:"marca"`
	Genero      string    `json:"genero" db:"genero"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
