package services

import (
	"context"
	"encoding/json"
	"testing"

	"shopper-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"absent", ``, []string{"Black"}},
		{"null", `null`, []string{"Black"}},
		{"array", `["Red","Blue"]`, []string{"Red", "Blue"}},
		{"empty array", `[]`, []string{"Black"}},
		{"single string", `"Red"`, []string{"Red"}},
		{"stringified array", `"[\"Red\",\"Green\"]"`, []string{"Red", "Green"}},
		{"unparsable string", `"[Red"`, []string{"[Red"}},
		{"blank string", `"  "`, []string{"Black"}},
		{"number", `42`, []string{"Black"}},
		{"mixed array", `["Red", 7, null, ""]`, []string{"Red", "7"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseList(json.RawMessage(tc.raw), models.DefaultColor))
		})
	}
}

func TestAddProductAssignsIncreasingIDs(t *testing.T) {
	env := newTestEnv(t)

	first := env.product(t, "Dress", 50)
	second := env.product(t, "Skirt", 30)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.True(t, first.Available)
	assert.Equal(t, []string{"Black"}, first.Colors)
	assert.Equal(t, []string{"M"}, first.Sizes)
	assert.Equal(t, 0, first.Stock)
}

func TestAddProductNormalizesInput(t *testing.T) {
	env := newTestEnv(t)
	price := 10.0
	product, err := env.catalog.AddProduct(context.Background(), models.ProductInput{
		Name: "Hoodie", Gender: " KIDS ", Category: "tops", Subcategory: "hoodies",
		Image: "img.png", NewPrice: &price, Colors: json.RawMessage(`"Red"`),
		Sizes: json.RawMessage(`"[\"S\",\"L\"]"`),
	})
	require.NoError(t, err)

	got, err := env.catalog.GetProduct(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, product.Key, got.Key)
	assert.Equal(t, "kids", got.Gender)
	assert.Equal(t, []string{"Red"}, got.Colors)
	assert.Equal(t, []string{"S", "L"}, got.Sizes)
}

func TestAddProductValidation(t *testing.T) {
	env := newTestEnv(t)
	price, negative, negStock := 10.0, -1.0, -3

	_, err := env.catalog.AddProduct(context.Background(), models.ProductInput{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, kindOf(err))
	assert.Contains(t, err.Error(), "category")
	assert.Contains(t, err.Error(), "new_price")
	assert.NotContains(t, err.Error(), "name")

	valid := models.ProductInput{Name: "x", Gender: "men", Category: "c", Subcategory: "s", Image: "i", NewPrice: &price}

	bad := valid
	bad.Gender = "unisex"
	_, err = env.catalog.AddProduct(context.Background(), bad)
	assert.Equal(t, KindValidation, kindOf(err))

	bad = valid
	bad.NewPrice = &negative
	_, err = env.catalog.AddProduct(context.Background(), bad)
	assert.Equal(t, KindValidation, kindOf(err))

	bad = valid
	bad.OldPrice = &negative
	_, err = env.catalog.AddProduct(context.Background(), bad)
	assert.Equal(t, KindValidation, kindOf(err))

	bad = valid
	bad.Stock = &negStock
	_, err = env.catalog.AddProduct(context.Background(), bad)
	assert.Equal(t, KindValidation, kindOf(err))

	count, err := env.st.Products.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetProductByEitherKey(t *testing.T) {
	env := newTestEnv(t)
	p := env.product(t, "Dress", 50)
	ctx := context.Background()

	byID, err := env.catalog.GetProduct(ctx, "1")
	require.NoError(t, err)
	byKey, err := env.catalog.GetProduct(ctx, p.Key.Hex())
	require.NoError(t, err)
	assert.Equal(t, byID, byKey)

	for _, key := range []string{"99", "64b7f0c2a1b2c3d4e5f60718", "nonsense"} {
		_, err = env.catalog.GetProduct(ctx, key)
		assert.Equal(t, KindNotFound, kindOf(err), key)
	}
}

func TestRemoveProductIsLenient(t *testing.T) {
	env := newTestEnv(t)
	env.product(t, "Dress", 50)
	ctx := context.Background()

	removed, err := env.catalog.RemoveProduct(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = env.catalog.RemoveProduct(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestListingHelpers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		env.product(t, "Dress", float64(i))
	}
	price := 1.0
	_, err := env.catalog.AddProduct(ctx, models.ProductInput{
		Name: "Shirt", Gender: "men", Category: "tops", Subcategory: "shirts", Image: "i", NewPrice: &price,
	})
	require.NoError(t, err)

	all, err := env.catalog.ListProducts(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 11)
	assert.Equal(t, 1, all[0].ID)

	men, err := env.catalog.ListProducts(ctx, "MEN", "")
	require.NoError(t, err)
	assert.Len(t, men, 1)

	latest, err := env.catalog.NewCollection(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 8)
	assert.Equal(t, 11, latest[0].ID)

	popular, err := env.catalog.PopularIn(ctx, "women")
	require.NoError(t, err)
	assert.Len(t, popular, 4)
}
