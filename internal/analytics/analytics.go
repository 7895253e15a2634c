// Package analytics computes read-only aggregate statistics and projections
// over a snapshot of the customer table. Nothing here mutates state.
package analytics

import (
	"sort"

	"utilityBillingPortal/models"
)

// Stats is the analytics dashboard payload.
type Stats struct {
	TotalCustomers int
	AvgUsageKWh    float64
	MaxUsageKWh    float64
	// MaxUsageName is the name of the highest consumer; on ties, the first
	// matching customer in snapshot order.
	MaxUsageName string
	// TotalRevenue is the sum of amount due across all customers.
	TotalRevenue float64
	// TotalUnpaid sums amount due over customers with an unpaid bill.
	TotalUnpaid float64
	UnpaidCount int
	// HypotheticalRevenue projects total revenue under a flat 5% price hike.
	HypotheticalRevenue float64
}

// Compute aggregates the snapshot at the given cost per kWh. An empty
// snapshot returns ErrNoData rather than NaN averages.
func Compute(customers []models.Customer, costPerKWh float64) (*Stats, error) {
	if len(customers) == 0 {
		return nil, models.ErrNoData
	}

	s := &Stats{TotalCustomers: len(customers)}
	var totalUsage float64
	s.MaxUsageKWh = customers[0].MonthlyUsageKWh
	s.MaxUsageName = customers[0].FullName

	for _, c := range customers {
		totalUsage += c.MonthlyUsageKWh
		if c.MonthlyUsageKWh > s.MaxUsageKWh {
			s.MaxUsageKWh = c.MonthlyUsageKWh
			s.MaxUsageName = c.FullName
		}
		due := c.MonthlyUsageKWh * costPerKWh
		s.TotalRevenue += due
		if !c.BillPaid {
			s.TotalUnpaid += due
			s.UnpaidCount++
		}
	}
	s.AvgUsageKWh = totalUsage / float64(len(customers))
	s.HypotheticalRevenue = s.TotalRevenue * 1.05
	return s, nil
}

// TopByUsage returns the top n customers by usage, descending. Ties keep the
// snapshot's order (stable sort), so results are deterministic.
func TopByUsage(customers []models.Customer, n int) []models.Customer {
	out := make([]models.Customer, len(customers))
	copy(out, customers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MonthlyUsageKWh > out[j].MonthlyUsageKWh
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
