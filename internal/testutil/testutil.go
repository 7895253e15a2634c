package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"utilityBillingPortal/internal/db"
	"utilityBillingPortal/models"
	"utilityBillingPortal/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// A shared-cache name keeps all connections in the pool on the same database.
// Closed automatically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SeedCustomer inserts a customer row directly, bypassing service validation.
func SeedCustomer(t *testing.T, d *sql.DB, name, email string, usage float64) *models.Customer {
	t.Helper()
	c, err := repository.NewCustomerRepository(d).Create(context.Background(), &models.Customer{
		FullName:        name,
		Email:           email,
		MonthlyUsageKWh: usage,
	})
	if err != nil {
		t.Fatalf("seed customer %s: %v", email, err)
	}
	return c
}

// Logger returns a silenced logger for tests.
func Logger() zerolog.Logger {
	return zerolog.Nop()
}
