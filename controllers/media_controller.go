package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/middleware"
	"github.com/tamohar/foundationbackend/services"
	"github.com/tamohar/foundationbackend/utils"
)

// POST /media (multipart: file, caption)
func UploadMedia(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Leave room for the other multipart fields on top of the file.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadSize()+(1<<20))

		fh, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "file is required")
			return
		}

		asset, err := media.Upload(c.Request.Context(), fh, c.PostForm("caption"), c.GetString(middleware.EmailKey))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, asset)
	}
}

// GET /media
func ListMedia(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := media.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, items)
	}
}

// DELETE /media/:id
func DeleteMedia(media *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := media.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondMessage(c, "Media deleted")
	}
}

// GET /uploads/*object serves objects held by the in-memory object store.
func ServeMemoryObject(store *utils.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimPrefix(c.Param("object"), "/")
		data, ok := store.Object(name)
		if !ok {
			respondError(c, services.ErrNotFound)
			return
		}
		c.Data(http.StatusOK, http.DetectContentType(data), data)
	}
}
