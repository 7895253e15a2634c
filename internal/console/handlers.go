package console

import (
	"context"
	"fmt"
	"text/tabwriter"

	"utilityBillingPortal/internal/analytics"
	"utilityBillingPortal/internal/auth"
	"utilityBillingPortal/internal/report"
)

func (s *Shell) addCustomer(ctx context.Context) {
	fmt.Fprintln(s.out, "\nNote: this creates a customer profile without a login.")
	name, ok := s.promptString("Full name")
	if !ok {
		return
	}
	email, ok := s.promptString("Email")
	if !ok {
		return
	}
	usage, ok := s.promptFloat("Initial monthly usage (kWh)")
	if !ok {
		return
	}
	id, err := s.ledger.AddCustomerManual(ctx, name, email, usage)
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Customer %q added (id %d).\n", name, id)
}

func (s *Shell) viewAll(ctx context.Context) {
	customers, err := s.ledger.ListAll(ctx)
	if err != nil {
		s.printErr(err)
		return
	}
	if len(customers) == 0 {
		fmt.Fprintln(s.out, "No customers found.")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tUSAGE (kWh)\tBILL PAID\tUSER ID")
	for _, c := range customers {
		paid := "no"
		if c.BillPaid {
			paid = "yes"
		}
		uid := "-"
		if c.UserID != nil {
			uid = fmt.Sprintf("%d", *c.UserID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\t%s\n", c.ID, c.FullName, c.Email, c.MonthlyUsageKWh, paid, uid)
	}
	_ = tw.Flush()
}

func (s *Shell) updateUsage(ctx context.Context) {
	id, ok := s.promptInt64("Customer ID")
	if !ok {
		return
	}
	usage, ok := s.promptFloat("New monthly usage (kWh)")
	if !ok {
		return
	}
	if err := s.ledger.UpdateUsage(ctx, id, usage); err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Customer %d usage updated; bill marked unpaid for the new period.\n", id)
}

func (s *Shell) deleteCustomer(ctx context.Context) {
	mode, ok := s.promptChoice("Delete by (1) ID or (2) email", 2)
	if !ok {
		return
	}
	var run func() error
	var label string
	if mode == 1 {
		id, ok := s.promptInt64("Customer ID to DELETE")
		if !ok {
			return
		}
		label = fmt.Sprintf("customer %d", id)
		run = func() error { return s.accounts.DeleteCustomer(ctx, id) }
	} else {
		email, ok := s.promptString("Customer email to DELETE")
		if !ok {
			return
		}
		label = email
		run = func() error { return s.accounts.DeleteCustomerByEmail(ctx, email) }
	}
	if !s.confirm(fmt.Sprintf("Permanently delete %s?", label)) {
		fmt.Fprintln(s.out, "Delete cancelled.")
		return
	}
	if err := run(); err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Deleted %s (any linked login was removed too).\n", label)
}

func (s *Shell) bulkLoad(ctx context.Context) {
	path, ok := s.promptString("CSV filename")
	if !ok {
		return
	}
	n, err := s.csv.Import(ctx, path)
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Added %d new customers from %s.\n", n, path)
}

func (s *Shell) exportCSV(ctx context.Context) {
	n, err := s.csv.Export(ctx, s.cfg.ExportFile)
	if err != nil {
		s.printErr(err)
		return
	}
	if n == 0 {
		fmt.Fprintln(s.out, "No data to export.")
		return
	}
	fmt.Fprintf(s.out, "Exported %d records to %s.\n", n, s.cfg.ExportFile)
}

func (s *Shell) analyticsDashboard(ctx context.Context) {
	customers, err := s.ledger.ListAll(ctx)
	if err != nil {
		s.printErr(err)
		return
	}
	stats, err := analytics.Compute(customers, s.ledger.Rate())
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintln(s.out, "\n--- Customer & Usage Stats ---")
	fmt.Fprintf(s.out, "  Total customers:   %d\n", stats.TotalCustomers)
	fmt.Fprintf(s.out, "  Average usage:     %.2f kWh\n", stats.AvgUsageKWh)
	fmt.Fprintf(s.out, "  Highest consumer:  %s at %.2f kWh\n", stats.MaxUsageName, stats.MaxUsageKWh)
	fmt.Fprintln(s.out, "--- Billing Stats ---")
	fmt.Fprintf(s.out, "  Total billed:      $%.2f\n", stats.TotalRevenue)
	fmt.Fprintf(s.out, "  Total unpaid:      $%.2f (%d customers)\n", stats.TotalUnpaid, stats.UnpaidCount)
	fmt.Fprintln(s.out, "--- Projections ---")
	fmt.Fprintf(s.out, "  Revenue with 5%% price hike: $%.2f\n", stats.HypotheticalRevenue)
}

func (s *Shell) usageChart(ctx context.Context) {
	customers, err := s.ledger.ListAll(ctx)
	if err != nil {
		s.printErr(err)
		return
	}
	if err := report.TopUsageChart(customers, s.renderer, s.cfg.ReportFile); err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Report saved to %s.\n", s.cfg.ReportFile)
}

func (s *Shell) createAdmin(ctx context.Context) {
	email, ok := s.promptString("New admin email")
	if !ok {
		return
	}
	password, ok := s.promptString("Temporary password (min 6 chars)")
	if !ok {
		return
	}
	if _, err := s.accounts.CreateAdmin(ctx, email, password); err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Admin user %s created.\n", email)
}

func (s *Shell) viewBill(ctx context.Context, p *auth.Principal) {
	c, err := s.ledger.GetByUserID(ctx, p.UserID)
	if err != nil {
		s.printErr(err)
		return
	}
	status := "NOT PAID"
	if c.BillPaid {
		status = "PAID"
	}
	fmt.Fprintln(s.out, "\n--- Your Customer Details ---")
	fmt.Fprintf(s.out, "  Customer ID:   %d\n", c.ID)
	fmt.Fprintf(s.out, "  Full name:     %s\n", c.FullName)
	fmt.Fprintf(s.out, "  Email:         %s\n", c.Email)
	fmt.Fprintln(s.out, "--- Your Bill Status ---")
	fmt.Fprintf(s.out, "  Monthly usage: %.2f kWh\n", c.MonthlyUsageKWh)
	fmt.Fprintf(s.out, "  Amount due:    $%.2f (at $%.2f/kWh)\n", s.ledger.AmountDue(c), s.ledger.Rate())
	fmt.Fprintf(s.out, "  Status:        %s\n", status)
}

func (s *Shell) payBill(ctx context.Context, p *auth.Principal) {
	c, err := s.ledger.GetByUserID(ctx, p.UserID)
	if err != nil {
		s.printErr(err)
		return
	}
	if c.BillPaid {
		fmt.Fprintln(s.out, "Your bill is already marked as PAID.")
		return
	}
	fmt.Fprintf(s.out, "Your amount due is $%.2f.\n", s.ledger.AmountDue(c))
	if !s.confirm("Confirm this payment?") {
		fmt.Fprintln(s.out, "Payment cancelled.")
		return
	}
	rec, err := s.ledger.Settle(ctx, p.UserID)
	if err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Thank you! Payment of $%.2f recorded, receipt %s.\n", rec.AmountPaid, rec.ReceiptID)
}
