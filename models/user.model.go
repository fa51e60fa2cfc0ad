package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// CartSlots is the number of zeroed entries a new cart starts with.
	CartSlots = 300
)

// Roles that may be assigned to a user.
var Roles = map[string]bool{
	RoleUser:  true,
	RoleAdmin: true,
}

// CartData maps a numeric product id to the quantity in the cart.
type CartData map[int]int

// NewCartData returns a cart with CartSlots zeroed entries.
func NewCartData() CartData {
	cart := make(CartData, CartSlots)
	for i := 0; i < CartSlots; i++ {
		cart[i] = 0
	}
	return cart
}

// User is a customer account. Roles decide access to the admin surface.
type User struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	CartData CartData           `json:"cartData" bson:"cartData"`
	Discount float64            `json:"discount" bson:"discount"`
	Roles    []string           `json:"roles" bson:"roles"`
	IsActive bool               `json:"isActive" bson:"isActive"`
	Date     time.Time          `json:"date" bson:"date"`
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Summary strips the password and cart from the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Roles:     u.Roles,
		IsActive:  u.IsActive,
		CreatedAt: u.Date,
	}
}

// UserSummary is the admin-facing view of a user.
type UserSummary struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Roles     []string           `json:"roles" bson:"roles"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"date"`
}

// CartItemRequest is the body of /addtocart and /removefromcart.
type CartItemRequest struct {
	ItemID *int `json:"itemId" binding:"required"`
}

// CartQuantityRequest is the body of /updatecartquantity.
type CartQuantityRequest struct {
	ItemID   *int `json:"itemId" binding:"required"`
	Quantity *int `json:"quantity" binding:"required"`
}

// DiscountRequest is the body of /applydiscount.
type DiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

// CartSummary is the response of /getcartsummary. Discount is reported but
// not deducted from TotalAmount.
type CartSummary struct {
	TotalAmount     float64 `json:"totalAmount"`
	TotalItems      int     `json:"totalItems"`
	DiscountPercent float64 `json:"discountPercent"`
}
