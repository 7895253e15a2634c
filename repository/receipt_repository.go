package repository

import (
	"context"
	"fmt"
	"time"

	"utilityBillingPortal/models"
)

type ReceiptRepository struct {
	db DBTX
}

func NewReceiptRepository(db DBTX) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Create appends a receipt. A receipt_id collision is a fatal generation
// error: the id is never silently regenerated or reused, so the caller's
// transaction aborts and no partial settlement survives.
func (r *ReceiptRepository) Create(ctx context.Context, rec *models.Receipt) (*models.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO receipts (receipt_id, customer_id, amount_paid, payment_date) VALUES (?, ?, ?, ?)`,
		rec.ReceiptID, rec.CustomerID, rec.AmountPaid, fmtTime(rec.PaymentDate))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("receipt id %q collided: %w", rec.ReceiptID, err)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *rec
	out.ID = id
	return &out, nil
}

// ListByCustomer returns all receipts for a customer, oldest first.
func (r *ReceiptRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, receipt_id, customer_id, amount_paid, payment_date FROM receipts WHERE customer_id = ? ORDER BY id ASC`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Receipt
	for rows.Next() {
		var rec models.Receipt
		var paid string
		if err := rows.Scan(&rec.ID, &rec.ReceiptID, &rec.CustomerID, &rec.AmountPaid, &paid); err != nil {
			return nil, err
		}
		t, err := parseTime(paid)
		if err != nil {
			return nil, err
		}
		rec.PaymentDate = t
		out = append(out, rec)
	}
	return out, rows.Err()
}
