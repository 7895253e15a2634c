package repository

import (
	"context"
	"database/sql"
	"time"

	"utilityBillingPortal/models"
)

// DBTX is the subset of *sql.DB and *sql.Tx the repositories need. Services
// construct transaction-scoped repositories over a *sql.Tx when an operation
// must mutate several rows atomically.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, email, passwordHash string, role models.Role) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerRepositoryI defines operations on Customer entities.
type CustomerRepositoryI interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Customer, error)
	ListByName(ctx context.Context) ([]models.Customer, error)
	SetUsage(ctx context.Context, id int64, usage float64) error
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// ReceiptRepositoryI defines operations on Receipt entities. Receipts are
// append-only; there are no update or delete operations.
type ReceiptRepositoryI interface {
	Create(ctx context.Context, r *models.Receipt) (*models.Receipt, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Receipt, error)
}
