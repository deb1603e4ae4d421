package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mute-store/internal/domain"
)

// ProductRepository defines the read-only interface for the catalog.
// Products are managed by an external catalog collaborator; this service
// only lists them.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List retrieves all catalog products
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, nombre, descripcion, precio, stock, imagen, categoria, marca, genero, created_at, updated_at
		FROM products
		ORDER BY nombre ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Nombre,
			&product.Descripcion,
			&product.Precio,
			&product.Stock,
			&product.Imagen,
			&product.Categoria,
			&product.Marca,
			&product.Genero,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
