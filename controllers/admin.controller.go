package controllers

import (
	"encoding/json"
	"net/http"

	"shopper-backend/models"
	"shopper-backend/services"

	"github.com/gin-gonic/gin"
)

// ListUsers handles GET /admin/users.
func (ctrl *Controller) ListUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := ctrl.Admin.ListUsers(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// SetUserRoles handles PUT /admin/users/:id/roles.
func (ctrl *Controller) SetUserRoles(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var body struct {
		Roles json.RawMessage `json:"roles"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "roles must be an array")
		return
	}
	roles, err := services.ParseRoles(body.Roles)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := ctrl.Admin.SetRoles(ctx, c.Param("id"), roles)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// ToggleUserStatus handles PUT /admin/users/:id/status.
func (ctrl *Controller) ToggleUserStatus(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := ctrl.Admin.ToggleActive(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isActive": user.IsActive, "user": user})
}

// ListAllOrders handles GET /admin/orders, newest first with each owner embedded.
func (ctrl *Controller) ListAllOrders(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	orders, err := ctrl.Orders.ListAllOrders(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status.
func (ctrl *Controller) UpdateOrderStatus(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	order, err := ctrl.Orders.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}
