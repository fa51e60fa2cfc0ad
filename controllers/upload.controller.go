package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadField is the multipart field carrying the product image.
const UploadField = "product"

// Upload handles POST /upload.
func (ctrl *Controller) Upload(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	file, err := c.FormFile(UploadField)
	if err != nil {
		badRequest(c, "no file uploaded in field \""+UploadField+"\"")
		return
	}

	url, err := ctrl.Images.Save(ctx, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "image_url": url})
}
