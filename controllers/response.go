package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"shopper-backend/middleware"
	"shopper-backend/services"
	"shopper-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const requestTimeout = 10 * time.Second

// requestContext bounds store work by the request lifetime and a timeout.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation, services.KindConflict:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON failure. Errors a caller did not cause
// are logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		c.JSON(statusFor(svcErr.Kind), gin.H{"success": false, "message": svcErr.Message})
		return
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		respondError(c, services.InvalidRequest(err))
		return
	}
	if errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrUnsupportedExt) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
}

// bindFailed answers a request body that did not decode or validate.
func bindFailed(c *gin.Context, err error) {
	respondError(c, services.InvalidRequest(err))
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// subject returns the user id carried by the verified token.
func subject(c *gin.Context) string {
	if claims := middleware.Claims(c); claims != nil {
		return claims.Subject
	}
	return ""
}
