package services

import (
	"context"
	"errors"
	"testing"

	"shopper-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validOrderRequest() models.PlaceOrderRequest {
	return models.PlaceOrderRequest{
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Dress", Image: "dress.png", Price: 25, Quantity: 2},
		},
		ShippingInfo: models.ShippingInfo{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555",
			Address: "1 Main St", City: "London", State: "LDN", ZipCode: "N1", Country: "UK",
		},
		PaymentInfo: models.PaymentInfo{Method: models.PaymentMethodCash},
		TotalAmount: 50,
	}
}

func TestPlaceOrderSnapshotsAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.signup(t, "buyer@example.com")
	require.NoError(t, env.carts.AddItem(ctx, uid, 1))

	placed, err := env.orders.PlaceOrder(ctx, uid, validOrderRequest())
	require.NoError(t, err)
	assert.True(t, placed.CartCleared)

	order, err := env.orders.GetOrder(ctx, uid, placed.Order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 50.0, order.TotalAmount)
	assert.Equal(t, 4.99, order.ShippingFee)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentInfo.Status)
	assert.Equal(t, "Dress", order.Items[0].Name)

	cart, err := env.carts.Cart(ctx, uid)
	require.NoError(t, err)
	for _, qty := range cart {
		assert.Zero(t, qty)
	}

	assert.Equal(t, []string{"buyer@example.com"}, env.notifier.to)
}

func TestPlaceOrderIgnoresNotifierFailure(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.err = errors.New("mail down")
	uid := env.signup(t, "mail@example.com")

	_, err := env.orders.PlaceOrder(context.Background(), uid, validOrderRequest())
	assert.NoError(t, err)
}

func TestPlaceOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	uid := env.signup(t, "invalid@example.com")

	cases := map[string]func(r *models.PlaceOrderRequest){
		"no items":          func(r *models.PlaceOrderRequest) { r.Items = nil },
		"zero quantity":     func(r *models.PlaceOrderRequest) { r.Items[0].Quantity = 0 },
		"negative price":    func(r *models.PlaceOrderRequest) { r.Items[0].Price = -1 },
		"missing city":      func(r *models.PlaceOrderRequest) { r.ShippingInfo.City = " " },
		"unknown method":    func(r *models.PlaceOrderRequest) { r.PaymentInfo.Method = "bitcoin" },
		"card without four": func(r *models.PlaceOrderRequest) { r.PaymentInfo.Method = models.PaymentMethodCreditCard },
		"card bad four": func(r *models.PlaceOrderRequest) {
			r.PaymentInfo = models.PaymentInfo{Method: models.PaymentMethodCreditCard, CardLastFour: "12a4"}
		},
		"negative total": func(r *models.PlaceOrderRequest) { r.TotalAmount = -5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validOrderRequest()
			mutate(&req)
			_, err := env.orders.PlaceOrder(context.Background(), uid, req)
			assert.Equal(t, KindValidation, kindOf(err))
		})
	}

	orders, err := env.orders.ListOrders(context.Background(), uid)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderValidationNamesFields(t *testing.T) {
	env := newTestEnv(t)
	uid := env.signup(t, "fields@example.com")

	req := validOrderRequest()
	req.Items[0].Quantity = 0
	req.ShippingInfo.ZipCode = ""
	req.PaymentInfo = models.PaymentInfo{Method: models.PaymentMethodCreditCard}

	_, err := env.orders.PlaceOrder(context.Background(), uid, req)
	require.Error(t, err)
	assert.Equal(t, KindValidation, kindOf(err))
	assert.Equal(t,
		"missing or invalid fields: items[0].quantity, shippingInfo.zipCode, paymentInfo.cardLastFour",
		err.Error())
}

func TestPlaceOrderCashIgnoresCardRules(t *testing.T) {
	env := newTestEnv(t)
	uid := env.signup(t, "cash@example.com")

	placed, err := env.orders.PlaceOrder(context.Background(), uid, validOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, placed.Order.PaymentInfo.Status)
}

func TestPlaceOrderWithCard(t *testing.T) {
	env := newTestEnv(t)
	uid := env.signup(t, "card@example.com")
	req := validOrderRequest()
	req.PaymentInfo = models.PaymentInfo{Method: models.PaymentMethodCreditCard, CardLastFour: "4242", CardHolderName: "Ada"}

	placed, err := env.orders.PlaceOrder(context.Background(), uid, req)
	require.NoError(t, err)
	assert.Equal(t, "4242", placed.Order.PaymentInfo.CardLastFour)
}

func TestGetOrderChecksOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signup(t, "owner@example.com")
	other := env.signup(t, "other@example.com")

	placed, err := env.orders.PlaceOrder(ctx, owner, validOrderRequest())
	require.NoError(t, err)

	_, err = env.orders.GetOrder(ctx, other, placed.Order.ID.Hex())
	assert.Equal(t, KindNotFound, kindOf(err))
	_, err = env.orders.GetOrder(ctx, owner, "garbage")
	assert.Equal(t, KindNotFound, kindOf(err))
}

func TestUpdateStatusHasNoTransitionGraph(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.signup(t, "status@example.com")
	placed, err := env.orders.PlaceOrder(ctx, uid, validOrderRequest())
	require.NoError(t, err)
	id := placed.Order.ID.Hex()

	order, err := env.orders.UpdateStatus(ctx, id, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)

	order, err = env.orders.UpdateStatus(ctx, id, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)

	_, err = env.orders.UpdateStatus(ctx, id, "Lost")
	assert.Equal(t, KindValidation, kindOf(err))
	_, err = env.orders.UpdateStatus(ctx, primitive.NewObjectID().Hex(), models.OrderStatusShipped)
	assert.Equal(t, KindNotFound, kindOf(err))
}

func TestListAllOrdersEmbedsOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.signup(t, "listed@example.com")
	_, err := env.orders.PlaceOrder(ctx, uid, validOrderRequest())
	require.NoError(t, err)

	all, err := env.orders.ListAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "listed@example.com", all[0].User.Email)
}
