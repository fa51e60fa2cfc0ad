package routes

import (
	"net/http"
	"slices"

	"shopper-backend/controllers"
	"shopper-backend/middleware"
	"shopper-backend/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures the engine built by Setup.
type Options struct {
	Env            string
	AllowOrigins   []string
	UploadDir      string
	ProtectCatalog bool
	Tokens         middleware.TokenVerifier
}

// Setup configures and returns the gin engine.
func Setup(ctrl *controllers.Controller, opts Options) *gin.Engine {
	if opts.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = opts.AllowOrigins
	if len(opts.AllowOrigins) == 0 || slices.Contains(opts.AllowOrigins, "*") {
		config.AllowOrigins = nil
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.TokenHeader}
	r.Use(cors.New(config))

	r.MaxMultipartMemory = 10 << 20
	if opts.UploadDir != "" {
		r.Static("/images", opts.UploadDir)
	}

	authed := middleware.AuthRequired(opts.Tokens)
	admin := []gin.HandlerFunc{authed, middleware.RoleRequired(models.RoleAdmin)}

	catalog := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if !opts.ProtectCatalog {
			return []gin.HandlerFunc{h}
		}
		return append(append([]gin.HandlerFunc{}, admin...), h)
	}

	r.GET("/health", ctrl.HealthCheck)

	// Catalog
	r.POST("/addproduct", catalog(ctrl.AddProduct)...)
	r.POST("/removeproduct", catalog(ctrl.RemoveProduct)...)
	r.POST("/upload", catalog(ctrl.Upload)...)
	r.GET("/allproducts", ctrl.AllProducts)
	r.GET("/product/:id", ctrl.GetProduct)
	r.GET("/newcollections", ctrl.NewCollections)
	r.GET("/popularinwomen", ctrl.PopularInWomen)

	// Accounts
	r.POST("/signup", ctrl.Signup)
	r.POST("/login", ctrl.Login)
	r.POST("/register", ctrl.Register)
	r.GET("/verify-token", ctrl.VerifyToken)

	// Cart
	cart := r.Group("/", authed)
	{
		cart.POST("/addtocart", ctrl.AddToCart)
		cart.POST("/removefromcart", ctrl.RemoveFromCart)
		cart.POST("/updatecartquantity", ctrl.UpdateCartQuantity)
		cart.POST("/applydiscount", ctrl.ApplyDiscount)
		cart.GET("/getcartsummary", ctrl.GetCartSummary)
		cart.POST("/getcart", ctrl.GetCart)
	}

	// Orders
	orders := r.Group("/", authed)
	{
		orders.POST("/placeorder", ctrl.PlaceOrder)
		orders.GET("/orders", ctrl.ListOrders)
		orders.GET("/orders/:orderId", ctrl.GetOrder)
	}

	// Admin
	adminGroup := r.Group("/admin", admin...)
	{
		adminGroup.GET("/users", ctrl.ListUsers)
		adminGroup.PUT("/users/:id/roles", ctrl.SetUserRoles)
		adminGroup.PUT("/users/:id/status", ctrl.ToggleUserStatus)
		adminGroup.GET("/orders", ctrl.ListAllOrders)
		adminGroup.PUT("/orders/:id/status", ctrl.UpdateOrderStatus)
		adminGroup.GET("/stats", ctrl.GetStats)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "endpoint not found"})
	})
	return r
}
