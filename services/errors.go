package services

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind classifies a service error for the HTTP layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a failure the caller caused. Anything else returned by a service
// is an internal error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidQuantity    = &Error{Kind: KindValidation, Message: "quantity must be at least 1"}
	ErrInvalidPromoCode   = &Error{Kind: KindValidation, Message: "invalid promo code"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid email or password"}
	ErrInvalidToken       = &Error{Kind: KindUnauthorized, Message: "please authenticate using a valid token"}
	ErrDuplicateIdentity  = &Error{Kind: KindConflict, Message: "existing user found with same email address"}
	ErrAccountDisabled    = &Error{Kind: KindForbidden, Message: "account is disabled"}
)

func validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// parseID turns a hex id from a path or token into an ObjectID.
func parseID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, validationf("invalid %s id", what)
	}
	return id, nil
}
