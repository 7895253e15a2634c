package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilityBillingPortal/internal/testutil"
	"utilityBillingPortal/models"
	"utilityBillingPortal/repository"
)

func newDirectory(t *testing.T, name string) *Directory {
	t.Helper()
	return NewDirectory(testutil.OpenInMemoryDB(t, name), "test-secret", 0, testutil.Logger())
}

func TestRegister_CreatesLinkedPair(t *testing.T) {
	dir := newDirectory(t, "acct_register")
	ctx := context.Background()

	userID, err := dir.Register(ctx, "alice@example.com", "Alice", "secret1")
	require.NoError(t, err)
	require.NotZero(t, userID)

	u, err := repository.NewUserRepository(dir.db).GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, models.RoleClient, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	c, err := repository.NewCustomerRepository(dir.db).GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "alice@example.com", c.Email)
	assert.Equal(t, "Alice", c.FullName)
	assert.False(t, c.BillPaid)
}

func TestRegister_Validation(t *testing.T) {
	dir := newDirectory(t, "acct_register_validation")
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		fullName string
		password string
	}{
		{"bad email", "nope", "Alice", "secret1"},
		{"missing tld", "a@b", "Alice", "secret1"},
		{"one-char tld", "a@b.c", "Alice", "secret1"},
		{"short password", "a@b.com", "Alice", "12345"},
		{"empty name", "a@b.com", "", "secret1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dir.Register(ctx, tc.email, tc.fullName, tc.password)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestRegister_AllOrNothing(t *testing.T) {
	dir := newDirectory(t, "acct_atomic")
	ctx := context.Background()

	// A pre-existing unlinked customer holds the email: the user insert
	// succeeds but the customer insert collides, so neither row survives.
	_, err := repository.NewCustomerRepository(dir.db).Create(ctx, &models.Customer{
		FullName: "Imported", Email: "taken@example.com",
	})
	require.NoError(t, err)

	_, err = dir.Register(ctx, "taken@example.com", "Late Comer", "secret1")
	assert.ErrorIs(t, err, models.ErrAccountExists)

	u, err := repository.NewUserRepository(dir.db).GetByEmail(ctx, "taken@example.com")
	require.NoError(t, err)
	assert.Nil(t, u, "user row must have been rolled back")
}

func TestRegister_DuplicateUser(t *testing.T) {
	dir := newDirectory(t, "acct_dupuser")
	ctx := context.Background()

	_, err := dir.Register(ctx, "bob@example.com", "Bob", "secret1")
	require.NoError(t, err)
	_, err = dir.Register(ctx, "bob@example.com", "Bob Again", "secret2")
	assert.ErrorIs(t, err, models.ErrAccountExists)
}

func TestAuthenticate(t *testing.T) {
	dir := newDirectory(t, "acct_auth")
	ctx := context.Background()

	userID, err := dir.Register(ctx, "carol@example.com", "Carol", "secret1")
	require.NoError(t, err)

	sess, err := dir.Authenticate(ctx, "carol@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, models.RoleClient, sess.Role)
	assert.NotEmpty(t, sess.ID)
	assert.NotEmpty(t, sess.Token)

	// Wrong password and unknown account must be indistinguishable.
	_, err1 := dir.Authenticate(ctx, "carol@example.com", "wrong")
	_, err2 := dir.Authenticate(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err1, models.ErrInvalidCredentials)
	assert.ErrorIs(t, err2, models.ErrInvalidCredentials)
	assert.Equal(t, err1, err2)
}

func TestCreateAdmin_NoCustomerRow(t *testing.T) {
	dir := newDirectory(t, "acct_admin")
	ctx := context.Background()

	adminID, err := dir.CreateAdmin(ctx, "root@example.com", "secret1")
	require.NoError(t, err)

	u, err := repository.NewUserRepository(dir.db).GetByID(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	c, err := repository.NewCustomerRepository(dir.db).GetByUserID(ctx, adminID)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = dir.CreateAdmin(ctx, "root@example.com", "secret2")
	assert.ErrorIs(t, err, models.ErrAccountExists)
}

func TestDeleteCustomer_CascadesToLinkedUser(t *testing.T) {
	dir := newDirectory(t, "acct_cascade")
	ctx := context.Background()

	userID, err := dir.Register(ctx, "dave@example.com", "Dave", "secret1")
	require.NoError(t, err)
	c, err := repository.NewCustomerRepository(dir.db).GetByUserID(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, dir.DeleteCustomer(ctx, c.ID))

	gone, err := repository.NewCustomerRepository(dir.db).GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	u, err := repository.NewUserRepository(dir.db).GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, u, "linked user must be deleted in the same transaction")
}

func TestDeleteCustomer_UnlinkedRemovesOnlyCustomer(t *testing.T) {
	dir := newDirectory(t, "acct_unlinked")
	ctx := context.Background()

	adminID, err := dir.CreateAdmin(ctx, "root@example.com", "secret1")
	require.NoError(t, err)
	c, err := repository.NewCustomerRepository(dir.db).Create(ctx, &models.Customer{
		FullName: "Walkin", Email: "walkin@example.com",
	})
	require.NoError(t, err)

	require.NoError(t, dir.DeleteCustomer(ctx, c.ID))

	u, err := repository.NewUserRepository(dir.db).GetByID(ctx, adminID)
	require.NoError(t, err)
	assert.NotNil(t, u, "unrelated users must survive")

	assert.ErrorIs(t, dir.DeleteCustomer(ctx, c.ID), models.ErrNotFound)
}

func TestDeleteCustomerByEmail(t *testing.T) {
	dir := newDirectory(t, "acct_delemail")
	ctx := context.Background()

	userID, err := dir.Register(ctx, "erin@example.com", "Erin", "secret1")
	require.NoError(t, err)

	require.NoError(t, dir.DeleteCustomerByEmail(ctx, "erin@example.com"))
	u, err := repository.NewUserRepository(dir.db).GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, u)

	assert.ErrorIs(t, dir.DeleteCustomerByEmail(ctx, "erin@example.com"), models.ErrNotFound)
}

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	dir := newDirectory(t, "acct_seed")
	ctx := context.Background()

	require.NoError(t, dir.EnsureDefaultAdmin(ctx, "admin@portal.com", "admin"))
	require.NoError(t, dir.EnsureDefaultAdmin(ctx, "admin@portal.com", "admin"))

	sess, err := dir.Authenticate(ctx, "admin@portal.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, sess.Role)
}
