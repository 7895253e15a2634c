// Package csvio is the bulk import/export adapter between the customer table
// and flat CSV files.
package csvio

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"utilityBillingPortal/internal/db"
	"utilityBillingPortal/models"
	"utilityBillingPortal/repository"
)

// importCols are the columns an import file must provide, in any order.
var importCols = []string{"full_name", "email", "monthly_usage_kwh"}

// exportHeader is the full customer schema written by Export.
var exportHeader = []string{"id", "full_name", "email", "monthly_usage_kwh", "bill_paid", "user_id", "last_payment_date", "bill_due_date"}

// Adapter reads and writes customer records as CSV.
type Adapter struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewAdapter(d *sql.DB, log zerolog.Logger) *Adapter {
	return &Adapter{db: d, log: log}
}

// Import appends every row of the file as an unlinked customer in one batch.
// The batch is atomic: if any row collides with an existing email (or another
// row in the file), nothing is persisted and ErrDuplicateEmail is returned.
func (a *Adapter) Import(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", models.ErrFileNotFound, path)
		}
		return 0, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrSchemaInvalid, err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: %s", models.ErrEmptyFile, path)
	}

	col, err := headerIndex(records[0])
	if err != nil {
		return 0, err
	}
	rows := records[1:]

	type entry struct {
		name  string
		email string
		usage float64
	}
	entries := make([]entry, 0, len(rows))
	for i, rec := range rows {
		usage, err := strconv.ParseFloat(rec[col["monthly_usage_kwh"]], 64)
		if err != nil || usage < 0 {
			return 0, fmt.Errorf("%w: row %d has bad usage %q", models.ErrInvalidInput, i+2, rec[col["monthly_usage_kwh"]])
		}
		entries = append(entries, entry{
			name:  rec[col["full_name"]],
			email: rec[col["email"]],
			usage: usage,
		})
	}

	err = db.WithTx(ctx, a.db, func(tx *sql.Tx) error {
		customers := repository.NewCustomerRepository(tx)
		for _, e := range entries {
			if _, err := customers.Create(ctx, &models.Customer{
				FullName:        e.name,
				Email:           e.email,
				MonthlyUsageKWh: e.usage,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	a.log.Info().Int("count", len(entries)).Str("path", path).Msg("customers imported")
	return len(entries), nil
}

// headerIndex maps column names to their positions, order-independent.
func headerIndex(header []string) (map[string]int, error) {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, want := range importCols {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", models.ErrSchemaInvalid, want)
		}
	}
	return col, nil
}

// Export writes every customer field to path with a header row and returns
// the record count. An empty ledger returns 0 and writes nothing; the caller
// decides whether that is worth reporting.
func (a *Adapter) Export(ctx context.Context, path string) (int, error) {
	customers, err := repository.NewCustomerRepository(a.db).ListByName(ctx)
	if err != nil {
		return 0, err
	}
	if len(customers) == 0 {
		return 0, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := writeCSV(f, customers); err != nil {
		return 0, err
	}
	a.log.Info().Int("count", len(customers)).Str("path", path).Msg("customers exported")
	return len(customers), nil
}

func writeCSV(w io.Writer, customers []models.Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, c := range customers {
		if err := cw.Write([]string{
			strconv.FormatInt(c.ID, 10),
			c.FullName,
			c.Email,
			strconv.FormatFloat(c.MonthlyUsageKWh, 'f', -1, 64),
			strconv.FormatBool(c.BillPaid),
			optInt(c.UserID),
			optTime(c.LastPaymentDate),
			optTime(c.BillDueDate),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func optInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func optTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
