// Package store persists products, users, orders and the legacy admins.
// Every implementation keeps single-document operations atomic; nothing
// spans documents.
package store

import (
	"context"
	"errors"

	"shopper-backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// ProductStore persists catalog entries.
type ProductStore interface {
	// NextID returns the next numeric product id. Concurrent callers never
	// receive the same value.
	NextID(ctx context.Context) (int, error)
	Insert(ctx context.Context, p *models.Product) error
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id int) (*models.Product, error)
	FindByKey(ctx context.Context, key primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []int) ([]models.Product, error)
	// DeleteByID reports whether a product was removed.
	DeleteByID(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int64, error)
	// InventoryValue sums new_price * stock over every product.
	InventoryValue(ctx context.Context) (float64, error)
}

// ProductFilter narrows product listings. Zero values match everything.
type ProductFilter struct {
	Gender   string
	Category string
	Newest   bool // newest first instead of insertion order
	Limit    int64
}

// UserStore persists accounts together with their cart and discount.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)

	// AddToCart adds delta to the quantity of productID, creating the slot.
	AddToCart(ctx context.Context, id primitive.ObjectID, productID, delta int) error
	// DecrementCart lowers the quantity of productID by one if it is above zero.
	DecrementCart(ctx context.Context, id primitive.ObjectID, productID int) error
	SetCartQuantity(ctx context.Context, id primitive.ObjectID, productID, qty int) error
	ResetCart(ctx context.Context, id primitive.ObjectID) error
	SetDiscount(ctx context.Context, id primitive.ObjectID, percent float64) error
	SetRoles(ctx context.Context, id primitive.ObjectID, roles []string) (*models.User, error)
	// ToggleActive flips isActive and returns the updated user.
	ToggleActive(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// AdminStore reads the legacy admins collection.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
}

// OrderStore persists orders.
type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	FindForUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// ListWithUsers returns every order, newest first, joined with its owner.
	ListWithUsers(ctx context.Context) ([]models.OrderWithUser, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	Count(ctx context.Context) (int64, error)
}

// Store groups the repositories the services need.
type Store struct {
	Products ProductStore
	Users    UserStore
	Admins   AdminStore
	Orders   OrderStore
}
