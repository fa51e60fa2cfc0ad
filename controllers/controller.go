package controllers

import (
	"context"

	"shopper-backend/services"
	"shopper-backend/storage"
)

// Controller holds the dependencies shared by every handler.
type Controller struct {
	Accounts *services.AccountService
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Orders   *services.OrderService
	Admin    *services.AdminService
	Images   storage.ImageStore

	// Ping reports whether the database is reachable. Nil means there is
	// no external database to check.
	Ping func(ctx context.Context) error
}
