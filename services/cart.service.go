package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopper-backend/models"
	"shopper-backend/store"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// promoCodes maps an upper-case promo code to its percent discount.
var promoCodes = map[string]float64{
	"SAVE10": 10,
	"OFF20":  20,
	"DRESS5": 5,
}

// CartService mutates the per-user quantity map and the stored discount.
type CartService struct {
	users    store.UserStore
	products store.ProductStore
}

// NewCartService resolves cart prices against products.
func NewCartService(users store.UserStore, products store.ProductStore) *CartService {
	return &CartService{users: users, products: products}
}

func checkProductID(productID int) error {
	if productID < 0 {
		return validationf("invalid item id %d", productID)
	}
	return nil
}

func userErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("user not found")
	}
	return err
}

// AddItem raises the quantity of productID by one.
func (s *CartService) AddItem(ctx context.Context, userID string, productID int) error {
	uid, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if err := checkProductID(productID); err != nil {
		return err
	}
	return userErr(s.users.AddToCart(ctx, uid, productID, 1))
}

// RemoveItem lowers the quantity of productID by one, never below zero.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID int) error {
	uid, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if err := checkProductID(productID); err != nil {
		return err
	}
	return userErr(s.users.DecrementCart(ctx, uid, productID))
}

// SetQuantity overwrites the quantity of productID. qty must be at least 1.
func (s *CartService) SetQuantity(ctx context.Context, userID string, productID, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	uid, err := parseID(userID, "user")
	if err != nil {
		return err
	}
	if err := checkProductID(productID); err != nil {
		return err
	}
	return userErr(s.users.SetCartQuantity(ctx, uid, productID, qty))
}

// ApplyPromo replaces the stored discount with the percent of code.
func (s *CartService) ApplyPromo(ctx context.Context, userID, code string) (float64, error) {
	percent, ok := promoCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, ErrInvalidPromoCode
	}
	uid, err := parseID(userID, "user")
	if err != nil {
		return 0, err
	}
	if err := s.users.SetDiscount(ctx, uid, percent); err != nil {
		return 0, userErr(err)
	}
	return percent, nil
}

func (s *CartService) load(ctx context.Context, userID string) (*models.User, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, userErr(err)
	}
	return user, nil
}

// Cart returns the stored quantity map.
func (s *CartService) Cart(ctx context.Context, userID string) (models.CartData, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CartData == nil {
		return models.CartData{}, nil
	}
	return user.CartData, nil
}

// Summarize totals the cart against current catalog prices. Ids that no
// longer resolve to a product contribute nothing. The discount is reported
// and not deducted.
func (s *CartService) Summarize(ctx context.Context, userID string) (*models.CartSummary, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ids []int
	for id, qty := range user.CartData {
		if qty > 0 {
			ids = append(ids, id)
		}
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}

	total := decimal.Zero
	items := 0
	for _, p := range products {
		qty := user.CartData[p.ID]
		total = total.Add(decimal.NewFromFloat(p.NewPrice).Mul(decimal.NewFromInt(int64(qty))))
		items += qty
	}

	amount, _ := total.Round(2).Float64()
	return &models.CartSummary{
		TotalAmount:     amount,
		TotalItems:      items,
		DiscountPercent: user.Discount,
	}, nil
}

// ClearCart resets every slot of the cart to zero.
func (s *CartService) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	return userErr(s.users.ResetCart(ctx, userID))
}
