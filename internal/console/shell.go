// Package console is the line-oriented interactive surface of the portal. It
// renders menus, collects validated input, and translates domain errors into
// messages; all billing semantics live in the services it calls.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"utilityBillingPortal/internal/account"
	"utilityBillingPortal/internal/auth"
	"utilityBillingPortal/internal/billing"
	"utilityBillingPortal/internal/config"
	"utilityBillingPortal/internal/csvio"
	"utilityBillingPortal/internal/report"
	"utilityBillingPortal/models"
)

// Shell runs the interactive menu loop.
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	accounts *account.Directory
	ledger   *billing.Ledger
	csv      *csvio.Adapter
	renderer report.Renderer
	cfg      *config.Config
	log      zerolog.Logger
}

func New(in io.Reader, out io.Writer, accounts *account.Directory, ledger *billing.Ledger,
	csv *csvio.Adapter, renderer report.Renderer, cfg *config.Config, log zerolog.Logger) *Shell {
	return &Shell{
		in:       bufio.NewScanner(in),
		out:      out,
		accounts: accounts,
		ledger:   ledger,
		csv:      csv,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
	}
}

// Run drives the main menu until the user exits or input closes.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, "\n=== Utility Management Portal ===")
		fmt.Fprintln(s.out, "1. Login")
		fmt.Fprintln(s.out, "2. Register (new clients)")
		fmt.Fprintln(s.out, "3. Exit")
		choice, ok := s.promptChoice("Choice", 3)
		if !ok {
			return nil
		}
		switch mainCmd(choice) {
		case mainLogin:
			s.login(ctx)
		case mainRegister:
			s.register(ctx)
		case mainExit:
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		}
	}
}

func (s *Shell) register(ctx context.Context) {
	email, ok := s.promptString("Email")
	if !ok {
		return
	}
	name, ok := s.promptString("Full name")
	if !ok {
		return
	}
	password, ok := s.promptString("Password (min 6 chars)")
	if !ok {
		return
	}
	confirm, ok := s.promptString("Confirm password")
	if !ok {
		return
	}
	if password != confirm {
		fmt.Fprintln(s.out, "Passwords do not match.")
		return
	}
	if _, err := s.accounts.Register(ctx, email, name, password); err != nil {
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "Account for %s created. You can now log in.\n", name)
}

func (s *Shell) login(ctx context.Context) {
	email, ok := s.promptString("Email")
	if !ok {
		return
	}
	password, ok := s.promptString("Password")
	if !ok {
		return
	}
	sess, err := s.accounts.Authenticate(ctx, email, password)
	if err != nil {
		s.printErr(err)
		return
	}
	// Re-derive the role gate from the session token rather than trusting
	// the in-memory struct; the menus only see the principal.
	p, err := auth.ParseSession(sess.Token, s.cfg.JWTSecret)
	if err != nil {
		s.printErr(err)
		return
	}
	ctx = auth.WithPrincipal(ctx, p)
	fmt.Fprintf(s.out, "Welcome, %s!\n", p.Email)

	switch p.Role {
	case models.RoleAdmin:
		s.adminMenu(ctx)
	case models.RoleClient:
		s.clientMenu(ctx, p)
	}
}

func (s *Shell) adminMenu(ctx context.Context) {
	if _, err := auth.RequireAdmin(ctx); err != nil {
		s.printErr(err)
		return
	}
	for {
		fmt.Fprintln(s.out, "\n--- Admin Management Portal ---")
		fmt.Fprintln(s.out, "1. Add new customer (manual)")
		fmt.Fprintln(s.out, "2. View all customers")
		fmt.Fprintln(s.out, "3. Update customer usage")
		fmt.Fprintln(s.out, "4. Delete customer")
		fmt.Fprintln(s.out, "5. Bulk load customers (CSV)")
		fmt.Fprintln(s.out, "6. Analytics dashboard")
		fmt.Fprintln(s.out, "7. Export all data to CSV")
		fmt.Fprintln(s.out, "8. Generate usage chart")
		fmt.Fprintln(s.out, "9. Create new admin user")
		fmt.Fprintln(s.out, "10. Logout")
		choice, ok := s.promptChoice("Choice", 10)
		if !ok {
			return
		}
		switch adminCmd(choice) {
		case adminAddCustomer:
			s.addCustomer(ctx)
		case adminViewAll:
			s.viewAll(ctx)
		case adminUpdateUsage:
			s.updateUsage(ctx)
		case adminDeleteCustomer:
			s.deleteCustomer(ctx)
		case adminBulkLoad:
			s.bulkLoad(ctx)
		case adminAnalytics:
			s.analyticsDashboard(ctx)
		case adminExport:
			s.exportCSV(ctx)
		case adminReport:
			s.usageChart(ctx)
		case adminCreateAdmin:
			s.createAdmin(ctx)
		case adminLogout:
			return
		}
	}
}

func (s *Shell) clientMenu(ctx context.Context, p *auth.Principal) {
	for {
		fmt.Fprintln(s.out, "\n--- Client Portal ---")
		fmt.Fprintln(s.out, "1. View my bill")
		fmt.Fprintln(s.out, "2. Pay my bill")
		fmt.Fprintln(s.out, "3. Logout")
		choice, ok := s.promptChoice("Choice", 3)
		if !ok {
			return
		}
		switch clientCmd(choice) {
		case clientViewBill:
			s.viewBill(ctx, p)
		case clientPayBill:
			s.payBill(ctx, p)
		case clientLogout:
			return
		}
	}
}

// printErr maps a domain error to a user-facing message. Everything is
// recoverable: the shell reports and returns to the menu.
func (s *Shell) printErr(err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		fmt.Fprintf(s.out, "[Error] %v\n", err)
	case errors.Is(err, models.ErrAccountExists), errors.Is(err, models.ErrDuplicateEmail):
		fmt.Fprintln(s.out, "[Error] That email already exists.")
	case errors.Is(err, models.ErrNotFound):
		fmt.Fprintln(s.out, "[Error] No matching record found.")
	case errors.Is(err, models.ErrInvalidCredentials):
		fmt.Fprintln(s.out, "[Error] Invalid email or password.")
	case errors.Is(err, models.ErrAlreadyPaid):
		fmt.Fprintln(s.out, "Your bill is already marked as PAID.")
	case errors.Is(err, models.ErrNoData):
		fmt.Fprintln(s.out, "No customer data available.")
	case errors.Is(err, models.ErrFileNotFound):
		fmt.Fprintf(s.out, "[Error] %v\n", err)
	case errors.Is(err, models.ErrEmptyFile):
		fmt.Fprintf(s.out, "[Error] %v\n", err)
	case errors.Is(err, models.ErrSchemaInvalid):
		fmt.Fprintf(s.out, "[Error] %v\n", err)
	default:
		s.log.Error().Err(err).Msg("operation failed")
		fmt.Fprintln(s.out, "[Error] The operation failed; nothing was changed.")
	}
}
