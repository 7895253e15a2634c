package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilityBillingPortal/models"
)

func customer(name string, usage float64, paid bool) models.Customer {
	return models.Customer{FullName: name, Email: name + "@example.com", MonthlyUsageKWh: usage, BillPaid: paid}
}

func TestCompute(t *testing.T) {
	snapshot := []models.Customer{
		customer("Alice", 100, true),
		customer("Bob", 300, false),
		customer("Carol", 200, false),
	}

	stats, err := Compute(snapshot, 0.12)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalCustomers)
	assert.InDelta(t, 200.0, stats.AvgUsageKWh, 1e-9)
	assert.Equal(t, 300.0, stats.MaxUsageKWh)
	assert.Equal(t, "Bob", stats.MaxUsageName)
	assert.InDelta(t, 600*0.12, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 500*0.12, stats.TotalUnpaid, 1e-9)
	assert.Equal(t, 2, stats.UnpaidCount)
	assert.InDelta(t, 600*0.12*1.05, stats.HypotheticalRevenue, 1e-9)
}

func TestCompute_MaxTieTakesFirst(t *testing.T) {
	snapshot := []models.Customer{
		customer("First", 50, false),
		customer("Second", 50, false),
	}
	stats, err := Compute(snapshot, 1)
	require.NoError(t, err)
	assert.Equal(t, "First", stats.MaxUsageName)
}

func TestCompute_EmptySnapshot(t *testing.T) {
	_, err := Compute(nil, 0.12)
	assert.ErrorIs(t, err, models.ErrNoData)
}

func TestTopByUsage(t *testing.T) {
	snapshot := []models.Customer{
		customer("Low", 1, false),
		customer("TieA", 10, false),
		customer("High", 99, false),
		customer("TieB", 10, false),
	}

	top := TopByUsage(snapshot, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "High", top[0].FullName)
	assert.Equal(t, "TieA", top[1].FullName, "ties keep input order")
	assert.Equal(t, "TieB", top[2].FullName)

	// n larger than the snapshot returns everything; input is untouched.
	all := TopByUsage(snapshot, 10)
	assert.Len(t, all, 4)
	assert.Equal(t, "Low", snapshot[0].FullName)
}
