package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopper-backend/auth"
	"shopper-backend/models"
	"shopper-backend/store"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	st       *store.Store
	accounts *AccountService
	catalog  *CatalogService
	carts    *CartService
	orders   *OrderService
	admin    *AdminService
	notifier *recordingNotifier
}

type recordingNotifier struct {
	to  []string
	err error
}

func (r *recordingNotifier) OrderPlaced(_ context.Context, to string, _ *models.Order) error {
	r.to = append(r.to, to)
	return r.err
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.NewMemory()
	tokens, err := auth.NewJWTMaker([]byte("test-secret"))
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	carts := NewCartService(st.Users, st.Products)
	return &testEnv{
		st:       st,
		accounts: NewAccountService(st.Users, st.Admins, tokens, time.Hour),
		catalog:  NewCatalogService(st.Products),
		carts:    carts,
		orders:   NewOrderService(st.Orders, st.Users, carts, notifier, 4.99),
		admin:    NewAdminService(st),
		notifier: notifier,
	}
}

// signup creates an account and returns its id.
func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	user, _, err := e.accounts.Register(context.Background(), models.SignupRequest{
		Name: "Test", Email: email, Password: "secret123",
	})
	require.NoError(t, err)
	return user.ID.Hex()
}

func (e *testEnv) product(t *testing.T, name string, price float64) *models.Product {
	t.Helper()
	p, err := e.catalog.AddProduct(context.Background(), models.ProductInput{
		Name: name, Gender: "women", Category: "clothing", Subcategory: "dresses",
		Image: "http://localhost/images/x.png", NewPrice: &price,
	})
	require.NoError(t, err)
	return p
}

func kindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return 0
}
