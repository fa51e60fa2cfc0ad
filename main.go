package main

import (
	"context"
	"log"
	"time"

	"shopper-backend/auth"
	"shopper-backend/config"
	"shopper-backend/controllers"
	"shopper-backend/notify"
	"shopper-backend/routes"
	"shopper-backend/services"
	"shopper-backend/storage"
	"shopper-backend/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctrl := &controllers.Controller{}

	var st *store.Store
	if cfg.StoreDriver == "memory" {
		log.Println("Using in-memory store; data is lost on restart")
		st = store.NewMemory()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		db, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			cancel()
			log.Fatal(err)
		}
		defer db.Client().Disconnect(context.Background())

		if err := store.InitMongo(ctx, db); err != nil {
			cancel()
			log.Fatalf("Failed to prepare collections: %v", err)
		}
		cancel()
		st = store.NewMongo(db)
		ctrl.Ping = func(ctx context.Context) error { return db.Client().Ping(ctx, nil) }
	}

	tokens, err := auth.NewTokenMaker(cfg.TokenFormat, cfg.TokenSecret)
	if err != nil {
		log.Fatalf("Failed to create token maker: %v", err)
	}

	var images storage.ImageStore
	if cfg.CloudinaryURL != "" {
		images, err = storage.NewCloudinary(cfg.CloudinaryURL, "shopper/products")
		if err != nil {
			log.Fatal(err)
		}
		log.Println("Product images go to Cloudinary")
	} else {
		images, err = storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatal(err)
		}
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.PostmarkToken != "" && cfg.EmailSender != "" {
		notifier = notify.NewPostmark(cfg.PostmarkToken, cfg.EmailSender)
	}

	carts := services.NewCartService(st.Users, st.Products)
	ctrl.Accounts = services.NewAccountService(st.Users, st.Admins, tokens, cfg.TokenTTL)
	ctrl.Catalog = services.NewCatalogService(st.Products)
	ctrl.Carts = carts
	ctrl.Orders = services.NewOrderService(st.Orders, st.Users, carts, notifier, cfg.ShippingFee)
	ctrl.Admin = services.NewAdminService(st)
	ctrl.Images = images

	if cfg.AdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := ctrl.Accounts.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		cancel()
		if err != nil {
			log.Fatalf("Failed to bootstrap admin: %v", err)
		}
	}

	r := routes.Setup(ctrl, routes.Options{
		Env:            cfg.Env,
		AllowOrigins:   cfg.AllowOrigins,
		UploadDir:      cfg.UploadDir,
		ProtectCatalog: cfg.ProtectCatalog,
		Tokens:         tokens,
	})

	log.Printf("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
