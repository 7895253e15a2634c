package models

import (
	"regexp"
	"time"
)

// Customer represents a billing subject.
// UserID has a one-to-one relation to User (nullable when the customer was
// created by manual entry or bulk import and therefore has no login).
// BillDueDate is carried for schema compatibility but never populated.
type Customer struct {
	ID              int64      `db:"id" json:"id"`
	FullName        string     `db:"full_name" json:"full_name"`
	Email           string     `db:"email" json:"email"`
	MonthlyUsageKWh float64    `db:"monthly_usage_kwh" json:"monthly_usage_kwh"`
	BillPaid        bool       `db:"bill_paid" json:"bill_paid"`
	UserID          *int64     `db:"user_id" json:"user_id"`
	LastPaymentDate *time.Time `db:"last_payment_date" json:"last_payment_date,omitempty"`
	BillDueDate     *time.Time `db:"bill_due_date" json:"bill_due_date,omitempty"`
}

// emailRe pins the accepted address shape: local@domain.tld with an
// alphabetic TLD of at least two characters. Matching is case-sensitive
// everywhere; no folding is applied before the uniqueness check.
var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s is an acceptable account or customer email.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
