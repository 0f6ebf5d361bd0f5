package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/dto"
	"github.com/tamohar/foundationbackend/services"
)

// GET /content
func GetContent(content *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := content.GetAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, doc)
	}
}

// GET /content/:section
func GetSection(content *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("section")
		value, version, err := content.GetSection(c.Request.Context(), name)
		if err != nil {
			respondError(c, err)
			return
		}

		etag := sectionETag(name, version)
		c.Header("ETag", etag)
		if c.GetHeader("If-None-Match") == etag {
			c.Status(http.StatusNotModified)
			return
		}
		respondData(c, http.StatusOK, value)
	}
}

// PUT /content/:section
func PutSection(content *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateSectionDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}

		name := c.Param("section")
		version, err := content.PutSection(c.Request.Context(), name, body.Data, body.Version)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("ETag", sectionETag(name, version))
		respondData(c, http.StatusOK, dto.UpdateSectionResponse{
			Message: "Content updated successfully",
			Section: name,
			Version: version,
		})
	}
}

func sectionETag(name string, version int64) string {
	return fmt.Sprintf(`"%s-v%d"`, name, version)
}
