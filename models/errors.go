package models

import "errors"

// Domain errors. Every service operation returns one of these (possibly
// wrapped) rather than aborting the process; the interactive shell maps them
// to messages and re-prompts.
var (
	// ErrInvalidInput covers malformed numeric or email input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAccountExists is returned when registration or manual entry would
	// duplicate an existing email.
	ErrAccountExists = errors.New("account already exists")

	// ErrDuplicateEmail is the storage-level uniqueness violation. Bulk import
	// surfaces it directly; account-level operations translate it to
	// ErrAccountExists.
	ErrDuplicateEmail = errors.New("duplicate email")

	// ErrNotFound is returned when no row matches the given id or email.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords, without distinction.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAlreadyPaid signals that settlement was a no-op because the current
	// period is already settled. Informational, not a failure.
	ErrAlreadyPaid = errors.New("bill already paid")

	// ErrNoData is returned by analytics and reporting over an empty ledger.
	ErrNoData = errors.New("no customer data")

	// Import-specific errors.
	ErrFileNotFound  = errors.New("file not found")
	ErrEmptyFile     = errors.New("file is empty")
	ErrSchemaInvalid = errors.New("csv schema invalid")
)
