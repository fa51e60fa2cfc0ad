package controllers

import (
	"net/http"

	"shopper-backend/models"

	"github.com/gin-gonic/gin"
)

// AddProduct handles POST /addproduct.
func (ctrl *Controller) AddProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var in models.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindFailed(c, err)
		return
	}

	product, err := ctrl.Catalog.AddProduct(ctx, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "name": product.Name, "product": product})
}

// AllProducts handles GET /allproducts with optional gender and category filters.
func (ctrl *Controller) AllProducts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := ctrl.Catalog.ListProducts(ctx, c.Query("gender"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// GetProduct handles GET /product/:id, where id is numeric or a storage key.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	product, err := ctrl.Catalog.GetProduct(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// RemoveProduct handles POST /removeproduct. Unknown ids still succeed.
func (ctrl *Controller) RemoveProduct(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var req models.RemoveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	removed, err := ctrl.Catalog.RemoveProduct(ctx, *req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "name": req.Name, "removed": removed})
}

// NewCollections handles GET /newcollections.
func (ctrl *Controller) NewCollections(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := ctrl.Catalog.NewCollection(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// PopularInWomen handles GET /popularinwomen.
func (ctrl *Controller) PopularInWomen(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	products, err := ctrl.Catalog.PopularIn(ctx, "women")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}
