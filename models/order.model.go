package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"

	PaymentMethodCreditCard = "creditCard"
	PaymentMethodCash       = "cash"

	PaymentStatusPending = "Pending"
)

// OrderStatuses lists every status an order may hold. Any status may follow any other.
var OrderStatuses = map[string]bool{
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

// OrderItem is a copy of the product taken when the order was placed.
type OrderItem struct {
	ProductID int     `json:"productId" bson:"productId" binding:"gte=0"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image" bson:"image"`
	Price     float64 `json:"price" bson:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity" bson:"quantity" binding:"min=1"`
}

// ShippingInfo holds the delivery address. Every field is required.
type ShippingInfo struct {
	FirstName string `json:"firstName" bson:"firstName" binding:"required,notblank"`
	LastName  string `json:"lastName" bson:"lastName" binding:"required,notblank"`
	Email     string `json:"email" bson:"email" binding:"required,notblank"`
	Phone     string `json:"phone" bson:"phone" binding:"required,notblank"`
	Address   string `json:"address" bson:"address" binding:"required,notblank"`
	City      string `json:"city" bson:"city" binding:"required,notblank"`
	State     string `json:"state" bson:"state" binding:"required,notblank"`
	ZipCode   string `json:"zipCode" bson:"zipCode" binding:"required,notblank"`
	Country   string `json:"country" bson:"country" binding:"required,notblank"`
}

// PaymentInfo is stored with the order; nothing processes it.
type PaymentInfo struct {
	Method         string `json:"method" bson:"method" binding:"required,oneof=creditCard cash"`
	Status         string `json:"status" bson:"status"`
	CardLastFour   string `json:"cardLastFour,omitempty" bson:"cardLastFour,omitempty" binding:"required_if=Method creditCard,omitempty,len=4,numeric"`
	CardHolderName string `json:"cardHolderName,omitempty" bson:"cardHolderName,omitempty"`
}

// Order is an immutable snapshot of a checkout. Only Status and UpdatedAt change.
type Order struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId"`
	Items        []OrderItem        `json:"items" bson:"items"`
	ShippingInfo ShippingInfo       `json:"shippingInfo" bson:"shippingInfo"`
	PaymentInfo  PaymentInfo        `json:"paymentInfo" bson:"paymentInfo"`
	TotalAmount  float64            `json:"totalAmount" bson:"totalAmount"`
	ShippingFee  float64            `json:"shippingFee" bson:"shippingFee"`
	Status       string             `json:"status" bson:"status"`
	OrderDate    time.Time          `json:"orderDate" bson:"orderDate"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// OrderOwner is the user summary embedded in admin order listings.
type OrderOwner struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
}

// OrderWithUser is an order joined with its owner.
type OrderWithUser struct {
	Order `bson:",inline"`
	User  *OrderOwner `json:"user" bson:"user,omitempty"`
}

// PlaceOrderRequest is the body of POST /placeorder.
type PlaceOrderRequest struct {
	Items        []OrderItem  `json:"items" binding:"required,min=1,dive"`
	ShippingInfo ShippingInfo `json:"shippingInfo"`
	PaymentInfo  PaymentInfo  `json:"paymentInfo"`
	TotalAmount  float64      `json:"totalAmount" binding:"gte=0"`
}

// OrderStatusRequest is the body of PUT /admin/orders/:id/status.
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
