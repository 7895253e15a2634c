// Package billing implements the billing lifecycle state machine: usage
// mutation, amount-due computation, settlement, and receipt emission.
//
// A customer is in one of two states. Pending (bill_paid=false) is the
// initial state and the state re-entered whenever usage changes. Paid
// (bill_paid=true) is reachable only through Settle, which consumes the
// billed usage, stamps the payment date, and appends exactly one receipt in
// the same transaction. No code path leaves bill_paid set without a matching
// receipt, or a receipt without the paid flag.
package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"utilityBillingPortal/internal/db"
	"utilityBillingPortal/models"
	"utilityBillingPortal/repository"
)

// Ledger is the authoritative interface to customer usage and payment state.
type Ledger struct {
	db       *sql.DB
	rate     float64
	validate *validator.Validate
	log      zerolog.Logger
}

// NewLedger builds a Ledger billing at rate per kWh. The rate is configured
// process-wide, not per customer.
func NewLedger(d *sql.DB, rate float64, log zerolog.Logger) *Ledger {
	return &Ledger{db: d, rate: rate, validate: validator.New(), log: log}
}

// Rate returns the configured cost per kWh.
func (l *Ledger) Rate() float64 { return l.rate }

// AmountDue computes the charge for the customer's current usage.
func (l *Ledger) AmountDue(c *models.Customer) float64 {
	return c.MonthlyUsageKWh * l.rate
}

// UpdateUsage stores a new reading and unconditionally resets bill_paid: a
// new reading opens a new billing period, so a previous payment no longer
// covers it.
func (l *Ledger) UpdateUsage(ctx context.Context, customerID int64, newUsage float64) error {
	if newUsage < 0 {
		return fmt.Errorf("%w: usage must be >= 0, got %v", models.ErrInvalidInput, newUsage)
	}
	if err := repository.NewCustomerRepository(l.db).SetUsage(ctx, customerID, newUsage); err != nil {
		return err
	}
	l.log.Info().Int64("customer_id", customerID).Float64("usage_kwh", newUsage).Msg("usage updated")
	return nil
}

type manualEntry struct {
	FullName string  `validate:"required"`
	Email    string  `validate:"required,email"`
	Usage    float64 `validate:"gte=0"`
}

// AddCustomerManual creates an unlinked customer: a billing subject with no
// login. Duplicate emails fail with ErrAccountExists and leave the table
// untouched.
func (l *Ledger) AddCustomerManual(ctx context.Context, name, email string, usage float64) (int64, error) {
	in := manualEntry{FullName: name, Email: email, Usage: usage}
	if err := l.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if !models.ValidEmail(email) {
		return 0, fmt.Errorf("%w: malformed email %q", models.ErrInvalidInput, email)
	}
	c, err := repository.NewCustomerRepository(l.db).Create(ctx, &models.Customer{
		FullName:        name,
		Email:           email,
		MonthlyUsageKWh: usage,
	})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return 0, models.ErrAccountExists
		}
		return 0, err
	}
	l.log.Info().Int64("customer_id", c.ID).Str("email", email).Msg("customer added")
	return c.ID, nil
}

// ListAll returns every customer sorted by full name ascending.
func (l *Ledger) ListAll(ctx context.Context) ([]models.Customer, error) {
	return repository.NewCustomerRepository(l.db).ListByName(ctx)
}

// GetByUserID resolves the customer linked to a login, for the client
// portal's bill view. Returns ErrNotFound when the login has no customer
// profile.
func (l *Ledger) GetByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	c, err := repository.NewCustomerRepository(l.db).GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, models.ErrNotFound
	}
	return c, nil
}

// Settle marks the current billing period of the customer linked to userID as
// paid. Atomically: the amount due is computed from the pre-reset usage,
// bill_paid flips to true, usage resets to zero, last_payment_date is
// stamped, and exactly one receipt is appended. If any step fails the whole
// transition rolls back and no receipt is emitted.
//
// An already-paid period returns ErrAlreadyPaid; callers treat it as
// informational, not a failure.
func (l *Ledger) Settle(ctx context.Context, userID int64) (*models.Receipt, error) {
	var rec *models.Receipt
	err := db.WithTx(ctx, l.db, func(tx *sql.Tx) error {
		customers := repository.NewCustomerRepository(tx)
		c, err := customers.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if c == nil {
			return models.ErrNotFound
		}
		if c.BillPaid {
			return models.ErrAlreadyPaid
		}
		amount := l.AmountDue(c)
		now := time.Now().UTC()
		if err := customers.MarkPaid(ctx, c.ID, now); err != nil {
			return err
		}
		rec, err = repository.NewReceiptRepository(tx).Create(ctx, &models.Receipt{
			ReceiptID:   receiptToken(now, c.ID),
			CustomerID:  c.ID,
			AmountPaid:  amount,
			PaymentDate: now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	l.log.Info().
		Int64("customer_id", rec.CustomerID).
		Str("receipt_id", rec.ReceiptID).
		Float64("amount", rec.AmountPaid).
		Msg("bill settled")
	return rec, nil
}

// receiptToken derives a human-readable receipt id from a nanosecond
// timestamp and the customer id, so two settlement attempts in the same
// second still get distinct ids. The receipts.receipt_id UNIQUE constraint
// backstops generation: a collision aborts the settlement instead of reusing
// an id.
func receiptToken(t time.Time, customerID int64) string {
	return fmt.Sprintf("RCP-%d-%d", t.UnixNano(), customerID)
}
