package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is the legacy administrator identity kept in its own collection.
// Role-bearing users replaced it; it is only read as a login fallback.
//
// Deprecated: grant the admin role to a User instead.
type Admin struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Date     time.Time          `json:"date" bson:"date"`
}

// LoginRequest defines the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest defines the body of POST /signup and POST /register.
// Older clients send the display name as "username".
type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// DisplayName returns whichever name field the client filled in.
func (r SignupRequest) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Username
}
