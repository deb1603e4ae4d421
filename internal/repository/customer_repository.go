package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mute-store/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerAlreadyExists = errors.New("customer with this email already exists")
)

// uniqueViolation is the postgres SQLSTATE for unique constraint violations.
// Duplicate detection relies on the database indexes, not on pre-checks, so
// concurrent inserts with the same email cannot both succeed.
const uniqueViolation = "23505"

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.Customer, error)
	UpsertByExternalID(ctx context.Context, externalID, email, nombre string) (created bool, err error)
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, nombre, email, password_hash, telefono, direccion, external_id, created_at, updated_at`

// Create inserts a new customer using parameterized queries
func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, nombre, email, password_hash, telefono, direccion, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.Nombre,
		customer.Email,
		nullString(customer.PasswordHash),
		customer.Telefono,
		customer.Direccion,
		customer.ExternalID,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrCustomerAlreadyExists
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// FindByEmail retrieves a customer by email using parameterized queries
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE email = $1`, customerColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, email), "email")
}

// FindByExternalID retrieves a customer by its identity-provider id
func (r *customerRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE external_id = $1`, customerColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, externalID), "external ID")
}

// UpsertByExternalID syncs a customer from the external identity provider.
// If no record with that external id exists one is created with null phone
// and address; otherwise the call is a no-op. Idempotent: a concurrent insert
// losing the unique-index race is reported as already-existing.
func (r *customerRepository) UpsertByExternalID(ctx context.Context, externalID, email, nombre string) (bool, error) {
	_, err := r.FindByExternalID(ctx, externalID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		return false, err
	}

	now := time.Now()
	customer := &domain.Customer{
		ID:         uuid.New(),
		Nombre:     nombre,
		Email:      email,
		ExternalID: &externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := r.Create(ctx, customer); err != nil {
		if errors.Is(err, ErrCustomerAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *customerRepository) scanOne(row *sql.Row, by string) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var passwordHash sql.NullString

	err := row.Scan(
		&customer.ID,
		&customer.Nombre,
		&customer.Email,
		&passwordHash,
		&customer.Telefono,
		&customer.Direccion,
		&customer.ExternalID,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer by %s: %w", by, err)
	}

	customer.PasswordHash = passwordHash.String
	return customer, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
