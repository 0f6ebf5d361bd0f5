package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/dto"
	"github.com/tamohar/foundationbackend/middleware"
	"github.com/tamohar/foundationbackend/models"
	"github.com/tamohar/foundationbackend/services"
)

// POST /users
func CreateUser(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}

		user, err := auth.CreateUser(c.Request.Context(), body.Email, body.Password, body.Name, models.Role(body.Role))
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusCreated, gin.H{
			"id":        user.ID.Hex(),
			"email":     user.Email,
			"name":      user.Name,
			"role":      user.Role,
			"isActive":  user.IsActive,
			"createdAt": user.CreatedAt,
		})
	}
}

// POST /users/me/password
func ChangeMyPassword(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}

		user, ok := middleware.CurrentUser(c)
		if !ok {
			respondError(c, services.ErrUnauthenticated)
			return
		}

		err := auth.ChangePassword(c.Request.Context(), user, middleware.CurrentClaims(c), body.CurrentPassword, body.NewPassword)
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}

		respondMessage(c, "Password updated")
	}
}
