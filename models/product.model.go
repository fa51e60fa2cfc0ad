package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product defines a catalog entry. ID is the public numeric identifier,
// Key is the storage key assigned by the database.
type Product struct {
	Key         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ID          int                `json:"id" bson:"id"`
	Name        string             `json:"name" bson:"name"`
	Gender      string             `json:"gender" bson:"gender"`
	Category    string             `json:"category" bson:"category"`
	Subcategory string             `json:"subcategory" bson:"subcategory"`
	Image       string             `json:"image" bson:"image"`
	NewPrice    float64            `json:"new_price" bson:"new_price"`
	OldPrice    *float64           `json:"old_price,omitempty" bson:"old_price,omitempty"`
	Stock       int                `json:"stock" bson:"stock"`
	Colors      []string           `json:"colors" bson:"colors"`
	Sizes       []string           `json:"sizes" bson:"sizes"`
	Date        time.Time          `json:"date" bson:"date"`
	Available   bool               `json:"available" bson:"available"`
}

// Genders accepted for a product.
var Genders = map[string]bool{
	"men":   true,
	"women": true,
	"kids":  true,
}

const (
	DefaultColor = "Black"
	DefaultSize  = "M"
)

// ProductInput is the body of POST /addproduct. Colors and Sizes stay raw
// because clients send them as arrays, plain strings or stringified arrays.
type ProductInput struct {
	Name        string          `json:"name" binding:"required,notblank"`
	Gender      string          `json:"gender" binding:"required,gender"`
	Category    string          `json:"category" binding:"required,notblank"`
	Subcategory string          `json:"subcategory" binding:"required,notblank"`
	Image       string          `json:"image" binding:"required,notblank"`
	NewPrice    *float64        `json:"new_price" binding:"required,gte=0"`
	OldPrice    *float64        `json:"old_price" binding:"omitempty,gte=0"`
	Stock       *int            `json:"stock" binding:"omitempty,gte=0"`
	Colors      json.RawMessage `json:"colors"`
	Sizes       json.RawMessage `json:"sizes"`
	Available   *bool           `json:"available"`
}

// RemoveProductRequest is the body of POST /removeproduct.
type RemoveProductRequest struct {
	ID   *int   `json:"id" binding:"required"`
	Name string `json:"name"`
}

// Stats defines the counters shown on the admin dashboard.
type Stats struct {
	TotalProducts int64 `json:"total_products"`
	TotalUsers    int64 `json:"total_users"`
	TotalOrders   int64 `json:"total_orders"`
	TotalAdmins   int64 `json:"total_admins"`

	TotalInventoryValue float64 `json:"total_inventory_value"`
}
