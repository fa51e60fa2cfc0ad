package controllers

import (
	"net/http"

	"shopper-backend/middleware"
	"shopper-backend/models"

	"github.com/gin-gonic/gin"
)

// Signup handles POST /signup and answers with a token only.
func (ctrl *Controller) Signup(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	token, err := ctrl.Accounts.Signup(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Register handles POST /register and answers with the new user and a token.
func (ctrl *Controller) Register(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	user, token, err := ctrl.Accounts.Register(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "registration successful",
		"user":    user.Summary(),
		"token":   token,
	})
}

// Login handles POST /login.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	user, token, err := ctrl.Accounts.Login(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
}

// VerifyToken handles GET /verify-token.
func (ctrl *Controller) VerifyToken(c *gin.Context) {
	claims, err := ctrl.Accounts.VerifyToken(middleware.ExtractToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   true,
		"userId":  claims.Subject,
		"roles":   claims.Roles,
	})
}
