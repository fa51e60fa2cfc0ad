package services

import (
	"context"
	"encoding/json"
	"testing"

	"shopper-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListUsersHidesSecrets(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "one@example.com")
	env.signup(t, "two@example.com")

	users, err := env.admin.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.True(t, u.IsActive)
		assert.Equal(t, []string{models.RoleUser}, u.Roles)
	}
}

func TestSetRoles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.signup(t, "roles@example.com")

	user, err := env.admin.SetRoles(ctx, uid, []string{"admin", "user", "admin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "user"}, user.Roles)

	_, err = env.admin.SetRoles(ctx, uid, []string{"superuser"})
	assert.Equal(t, KindValidation, kindOf(err))

	_, err = env.admin.SetRoles(ctx, primitive.NewObjectID().Hex(), []string{"user"})
	assert.Equal(t, KindNotFound, kindOf(err))
}

func TestToggleActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.signup(t, "toggle@example.com")

	user, err := env.admin.ToggleActive(ctx, uid)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	user, err = env.admin.ToggleActive(ctx, uid)
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = env.admin.ToggleActive(ctx, "bad")
	assert.Equal(t, KindValidation, kindOf(err))
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "stats@example.com")
	env.product(t, "Dress", 10)
	price, stock := 12.5, 4
	_, err := env.catalog.AddProduct(context.Background(), models.ProductInput{
		Name: "Coat", Gender: "men", Category: "outerwear", Subcategory: "coats",
		Image: "coat.png", NewPrice: &price, Stock: &stock,
	})
	require.NoError(t, err)

	stats, err := env.admin.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, 50.0, stats.TotalInventoryValue)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Zero(t, stats.TotalOrders)
}

func TestParseRoles(t *testing.T) {
	roles, err := ParseRoles(json.RawMessage(`["user","admin"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"user", "admin"}, roles)

	for _, raw := range []string{``, `"admin"`, `null`, `{"a":1}`, `[1,2]`} {
		_, err := ParseRoles(json.RawMessage(raw))
		assert.Equal(t, KindValidation, kindOf(err), raw)
	}
}
