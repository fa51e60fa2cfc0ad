package controllers

import (
	"net/http"

	"shopper-backend/models"

	"github.com/gin-gonic/gin"
)

// PlaceOrder handles POST /placeorder.
func (ctrl *Controller) PlaceOrder(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	placed, err := ctrl.Orders.PlaceOrder(ctx, subject(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "order placed",
		"order":       placed.Order,
		"cartCleared": placed.CartCleared,
	})
}

// GetOrder handles GET /orders/:orderId for the owner of the order.
func (ctrl *Controller) GetOrder(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	order, err := ctrl.Orders.GetOrder(ctx, subject(c), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// ListOrders handles GET /orders for the signed-in user.
func (ctrl *Controller) ListOrders(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := ctrl.Orders.ListOrders(ctx, subject(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}
