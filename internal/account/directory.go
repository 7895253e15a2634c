// Package account manages login identities and their linked customer rows:
// registration, authentication, admin creation, and the delete cascade.
package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"utilityBillingPortal/internal/auth"
	"utilityBillingPortal/internal/db"
	"utilityBillingPortal/models"
	"utilityBillingPortal/repository"
)

// Directory is the account service. All multi-row mutations run in a single
// transaction: a registration creates its user and customer rows together or
// not at all, and deleting a customer removes its linked user in the same
// commit.
type Directory struct {
	db       *sql.DB
	secret   string
	tokenTTL time.Duration
	validate *validator.Validate
	log      zerolog.Logger
}

func NewDirectory(d *sql.DB, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *Directory {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Directory{
		db:       d,
		secret:   jwtSecret,
		tokenTTL: tokenTTL,
		validate: validator.New(),
		log:      log,
	}
}

type registration struct {
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
	Password string `validate:"required,min=6"`
}

type adminCreation struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Register creates a client login and its linked customer profile sharing the
// same email. Either both rows persist or neither does.
func (d *Directory) Register(ctx context.Context, email, fullName, password string) (int64, error) {
	in := registration{Email: email, FullName: fullName, Password: password}
	if err := d.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if !models.ValidEmail(email) {
		return 0, fmt.Errorf("%w: malformed email %q", models.ErrInvalidInput, email)
	}

	var userID int64
	err := db.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		u, err := repository.NewUserRepository(tx).Create(ctx, email, hash, models.RoleClient)
		if err != nil {
			if errors.Is(err, models.ErrDuplicateEmail) {
				return models.ErrAccountExists
			}
			return err
		}
		uid := u.ID
		if _, err := repository.NewCustomerRepository(tx).Create(ctx, &models.Customer{
			FullName: fullName,
			Email:    email,
			UserID:   &uid,
		}); err != nil {
			if errors.Is(err, models.ErrDuplicateEmail) {
				return models.ErrAccountExists
			}
			return err
		}
		userID = u.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	d.log.Info().Int64("user_id", userID).Str("email", email).Msg("client registered")
	return userID, nil
}

// Authenticate verifies credentials and returns a role-scoped session.
// Unknown emails and wrong passwords yield the same ErrInvalidCredentials so
// login attempts cannot enumerate accounts.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	u, err := repository.NewUserRepository(d.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !auth.CheckPassword(password, u.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}
	token, err := auth.SignSession(d.secret, u.ID, u.Email, u.Role, d.tokenTTL)
	if err != nil {
		return nil, err
	}
	d.log.Info().Str("email", u.Email).Str("role", string(u.Role)).Msg("login")
	return &models.Session{
		ID:     uuid.NewString(),
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Token:  token,
	}, nil
}

// CreateAdmin creates an admin login. Admins have no customer profile.
func (d *Directory) CreateAdmin(ctx context.Context, email, password string) (int64, error) {
	in := adminCreation{Email: email, Password: password}
	if err := d.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if !models.ValidEmail(email) {
		return 0, fmt.Errorf("%w: malformed email %q", models.ErrInvalidInput, email)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}
	u, err := repository.NewUserRepository(d.db).Create(ctx, email, hash, models.RoleAdmin)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return 0, models.ErrAccountExists
		}
		return 0, err
	}
	d.log.Info().Int64("user_id", u.ID).Str("email", email).Msg("admin created")
	return u.ID, nil
}

// DeleteCustomer removes a customer and, when one exists, its linked user in
// the same transaction. The cascade never runs the other way.
func (d *Directory) DeleteCustomer(ctx context.Context, customerID int64) error {
	return db.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		customers := repository.NewCustomerRepository(tx)
		c, err := customers.GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		if c == nil {
			return models.ErrNotFound
		}
		return d.deleteCascade(ctx, tx, c)
	})
}

// DeleteCustomerByEmail is the email-addressed variant of DeleteCustomer.
func (d *Directory) DeleteCustomerByEmail(ctx context.Context, email string) error {
	return db.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		customers := repository.NewCustomerRepository(tx)
		c, err := customers.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if c == nil {
			return models.ErrNotFound
		}
		return d.deleteCascade(ctx, tx, c)
	})
}

func (d *Directory) deleteCascade(ctx context.Context, tx *sql.Tx, c *models.Customer) error {
	if err := repository.NewCustomerRepository(tx).Delete(ctx, c.ID); err != nil {
		return err
	}
	if c.UserID != nil {
		if err := repository.NewUserRepository(tx).Delete(ctx, *c.UserID); err != nil {
			return err
		}
		d.log.Info().Int64("customer_id", c.ID).Int64("user_id", *c.UserID).Msg("customer and linked user deleted")
		return nil
	}
	d.log.Info().Int64("customer_id", c.ID).Msg("customer deleted")
	return nil
}

// EnsureDefaultAdmin seeds the bootstrap admin on first run so a fresh
// database is never locked out. No-op when the email already exists. The
// configured bootstrap password bypasses the registration length policy,
// matching the seeding behaviour the portal has always had.
func (d *Directory) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = repository.NewUserRepository(d.db).Create(ctx, email, hash, models.RoleAdmin)
	if errors.Is(err, models.ErrDuplicateEmail) {
		return nil
	}
	if err == nil {
		d.log.Warn().Str("email", email).Msg("default admin created; change its password")
	}
	return err
}
