package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utilityBillingPortal/models"
)

func TestSignAndParseSession(t *testing.T) {
	token, err := SignSession("secret", 7, "alice@example.com", models.RoleClient, time.Hour)
	require.NoError(t, err)

	p, err := ParseSession(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, models.RoleClient, p.Role)
}

func TestParseSession_Failures(t *testing.T) {
	token, err := SignSession("secret", 1, "a@b.com", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = ParseSession(token, "other-secret")
	assert.Error(t, err)

	_, err = ParseSession("garbage", "secret")
	assert.Error(t, err)

	expired, err := SignSession("secret", 1, "a@b.com", models.RoleAdmin, -time.Hour)
	require.NoError(t, err)
	_, err = ParseSession(expired, "secret")
	assert.Error(t, err)
}

func TestSignSession_EmptySecret(t *testing.T) {
	_, err := SignSession("", 1, "a@b.com", models.RoleClient, time.Hour)
	assert.Error(t, err)
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()

	_, err := RequireAdmin(ctx)
	assert.Error(t, err)

	_, err = RequireAdmin(WithPrincipal(ctx, &Principal{Email: "c@d.com", Role: models.RoleClient}))
	assert.Error(t, err)

	p, err := RequireAdmin(WithPrincipal(ctx, &Principal{Email: "a@b.com", Role: models.RoleAdmin}))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", p.Email)
}
