package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilityBillingPortal/internal/account"
	"utilityBillingPortal/internal/testutil"
	"utilityBillingPortal/models"
	"utilityBillingPortal/repository"
)

const testRate = 0.12

func newLedger(t *testing.T, name string) (*Ledger, *account.Directory) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	log := testutil.Logger()
	return NewLedger(d, testRate, log), account.NewDirectory(d, "test-secret", 0, log)
}

func TestUpdateUsageThenAmountDue(t *testing.T) {
	ledger, _ := newLedger(t, "ledger_amount")
	ctx := context.Background()

	id, err := ledger.AddCustomerManual(ctx, "Alice", "alice@example.com", 0)
	require.NoError(t, err)

	for _, usage := range []float64{0, 1, 42.5, 120.75} {
		require.NoError(t, ledger.UpdateUsage(ctx, id, usage))
		c, err := repository.NewCustomerRepository(ledger.db).GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, usage*testRate, ledger.AmountDue(c))
	}
}

func TestUpdateUsage_Validation(t *testing.T) {
	ledger, _ := newLedger(t, "ledger_validation")
	ctx := context.Background()

	id, err := ledger.AddCustomerManual(ctx, "Alice", "alice@example.com", 10)
	require.NoError(t, err)

	err = ledger.UpdateUsage(ctx, id, -1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = ledger.UpdateUsage(ctx, 9999, 5)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSettle_Idempotent(t *testing.T) {
	ledger, accounts := newLedger(t, "ledger_settle")
	ctx := context.Background()

	userID, err := accounts.Register(ctx, "bob@example.com", "Bob", "secret1")
	require.NoError(t, err)

	c, err := ledger.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, ledger.UpdateUsage(ctx, c.ID, 100))

	rec, err := ledger.Settle(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100*testRate, rec.AmountPaid)
	assert.NotEmpty(t, rec.ReceiptID)

	after, err := ledger.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, after.BillPaid)
	assert.Zero(t, after.MonthlyUsageKWh)
	require.NotNil(t, after.LastPaymentDate)

	// Second settlement is informational and mutates nothing.
	_, err = ledger.Settle(ctx, userID)
	assert.ErrorIs(t, err, models.ErrAlreadyPaid)

	again, err := ledger.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, after.LastPaymentDate, again.LastPaymentDate)

	receipts, err := repository.NewReceiptRepository(ledger.db).ListByCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}

func TestSettle_BeforeAnyUsage(t *testing.T) {
	ledger, accounts := newLedger(t, "ledger_zero")
	ctx := context.Background()

	userID, err := accounts.Register(ctx, "a@b.com", "Alice", "secret1")
	require.NoError(t, err)

	rec, err := ledger.Settle(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.AmountPaid)

	c, err := ledger.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, c.BillPaid)

	receipts, err := repository.NewReceiptRepository(ledger.db).ListByCustomer(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, 0.0, receipts[0].AmountPaid)
}

func TestSettle_NoLinkedCustomer(t *testing.T) {
	ledger, accounts := newLedger(t, "ledger_nolink")
	ctx := context.Background()

	adminID, err := accounts.CreateAdmin(ctx, "root@example.com", "secret1")
	require.NoError(t, err)

	_, err = ledger.Settle(ctx, adminID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateUsage_ReopensPaidPeriod(t *testing.T) {
	ledger, accounts := newLedger(t, "ledger_reopen")
	ctx := context.Background()

	userID, err := accounts.Register(ctx, "carol@example.com", "Carol", "secret1")
	require.NoError(t, err)
	_, err = ledger.Settle(ctx, userID)
	require.NoError(t, err)

	c, err := ledger.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.True(t, c.BillPaid)

	require.NoError(t, ledger.UpdateUsage(ctx, c.ID, 120.0))
	c, err = ledger.GetByUserID(ctx, userID)
	require.NoError(t, err)
	assert.False(t, c.BillPaid, "new usage must reopen the billing period")
	assert.Equal(t, 120.0, c.MonthlyUsageKWh)
}

func TestAddCustomerManual_DuplicateEmail(t *testing.T) {
	ledger, _ := newLedger(t, "ledger_dup")
	ctx := context.Background()

	_, err := ledger.AddCustomerManual(ctx, "Bob", "b@c.com", 50.0)
	require.NoError(t, err)

	_, err = ledger.AddCustomerManual(ctx, "Bob2", "b@c.com", 10.0)
	assert.ErrorIs(t, err, models.ErrAccountExists)

	all, err := ledger.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Bob", all[0].FullName)
}

func TestAddCustomerManual_Validation(t *testing.T) {
	ledger, _ := newLedger(t, "ledger_manual_validation")
	ctx := context.Background()

	_, err := ledger.AddCustomerManual(ctx, "Bob", "not-an-email", 1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = ledger.AddCustomerManual(ctx, "Bob", "b@c.com", -5)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestReceiptTokenUniqueness(t *testing.T) {
	seen := map[string]bool{}
	base := time.Now()
	for i := 0; i < 1000; i++ {
		tok := receiptToken(base.Add(time.Duration(i)), 7)
		require.False(t, seen[tok], "token %s repeated", tok)
		seen[tok] = true
	}
}
