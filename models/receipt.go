package models

import "time"

// Receipt is an immutable proof-of-payment record, created exactly once per
// successful settlement. Receipts are never updated or deleted; a receipt may
// outlive its customer.
type Receipt struct {
	ID          int64     `db:"id" json:"id"`
	ReceiptID   string    `db:"receipt_id" json:"receipt_id"`
	CustomerID  int64     `db:"customer_id" json:"customer_id"`
	AmountPaid  float64   `db:"amount_paid" json:"amount_paid"`
	PaymentDate time.Time `db:"payment_date" json:"payment_date"`
}
