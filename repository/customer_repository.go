package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"utilityBillingPortal/models"
)

type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerCols = `id, full_name, email, monthly_usage_kwh, bill_paid, user_id, last_payment_date, bill_due_date`

// scanCustomer maps one row onto a Customer. Fields are always addressed by
// the column list above, never by positional assumptions elsewhere.
func scanCustomer(scan func(dest ...any) error) (*models.Customer, error) {
	var c models.Customer
	var userID sql.NullInt64
	var lastPayment, dueDate sql.NullString
	if err := scan(&c.ID, &c.FullName, &c.Email, &c.MonthlyUsageKWh, &c.BillPaid, &userID, &lastPayment, &dueDate); err != nil {
		return nil, err
	}
	if userID.Valid {
		v := userID.Int64
		c.UserID = &v
	}
	if lastPayment.Valid && lastPayment.String != "" {
		t, err := parseTime(lastPayment.String)
		if err != nil {
			return nil, err
		}
		c.LastPaymentDate = &t
	}
	if dueDate.Valid && dueDate.String != "" {
		t, err := parseTime(dueDate.String)
		if err != nil {
			return nil, err
		}
		c.BillDueDate = &t
	}
	return &c, nil
}

// Create inserts a new customer. Returns models.ErrDuplicateEmail when the
// email collides with an existing customer row.
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	if c == nil {
		return nil, errors.New("customer is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (full_name, email, monthly_usage_kwh, bill_paid, user_id) VALUES (?, ?, ?, ?, ?)`,
		c.FullName, c.Email, c.MonthlyUsageKWh, c.BillPaid, c.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateEmail
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *c
	out.ID = id
	return &out, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+customerCols+` FROM customers WHERE email = ?`, email)
	c, err := scanCustomer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CustomerRepository) GetByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+customerCols+` FROM customers WHERE user_id = ?`, userID)
	c, err := scanCustomer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// ListByName returns every customer ordered by full_name ascending. The list
// is recomputed on each call; nothing is cached.
func (r *CustomerRepository) ListByName(ctx context.Context) ([]models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+customerCols+` FROM customers ORDER BY full_name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// SetUsage stores a new usage reading and resets bill_paid: a usage change
// implicitly opens a new billing period, invalidating any prior payment.
// Returns models.ErrNotFound when no customer has the given id.
func (r *CustomerRepository) SetUsage(ctx context.Context, id int64, usage float64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET monthly_usage_kwh = ?, bill_paid = 0 WHERE id = ?`, usage, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkPaid flips the customer into the Paid state: bill_paid set, usage
// consumed back to zero, payment date recorded. The `bill_paid = 0` guard
// re-validates the state inside the caller's transaction, so a concurrent
// duplicate settlement sees models.ErrAlreadyPaid instead of emitting a
// second receipt.
func (r *CustomerRepository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE customers SET bill_paid = 1, monthly_usage_kwh = 0, last_payment_date = ? WHERE id = ? AND bill_paid = 0`,
		fmtTime(paidAt), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrAlreadyPaid
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	return err
}
