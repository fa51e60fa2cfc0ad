package controllers

import (
	"net/http"

	"shopper-backend/models"

	"github.com/gin-gonic/gin"
)

// AddToCart handles POST /addtocart, adding one unit of itemId.
func (ctrl *Controller) AddToCart(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := ctrl.Carts.AddItem(ctx, subject(c), *req.ItemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "added"})
}

// RemoveFromCart handles POST /removefromcart. Quantities never drop below zero.
func (ctrl *Controller) RemoveFromCart(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := ctrl.Carts.RemoveItem(ctx, subject(c), *req.ItemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "removed"})
}

// UpdateCartQuantity handles POST /updatecartquantity.
func (ctrl *Controller) UpdateCartQuantity(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := ctrl.Carts.SetQuantity(ctx, subject(c), *req.ItemID, *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "quantity updated"})
}

// ApplyDiscount handles POST /applydiscount. A valid code replaces any
// previously applied one.
func (ctrl *Controller) ApplyDiscount(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	percent, err := ctrl.Carts.ApplyPromo(ctx, subject(c), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "discount": percent})
}

// GetCartSummary handles GET /getcartsummary.
func (ctrl *Controller) GetCartSummary(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	summary, err := ctrl.Carts.Summarize(ctx, subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"totalAmount":     summary.TotalAmount,
		"totalItems":      summary.TotalItems,
		"discountPercent": summary.DiscountPercent,
	})
}

// GetCart handles POST /getcart and returns the raw quantity map.
func (ctrl *Controller) GetCart(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	cart, err := ctrl.Carts.Cart(ctx, subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cartData": cart})
}
