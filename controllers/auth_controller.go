package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tamohar/foundationbackend/dto"
	"github.com/tamohar/foundationbackend/middleware"
	"github.com/tamohar/foundationbackend/services"
)

// POST /auth/login
func Login(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, err.Error())
			return
		}

		session, err := auth.Login(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		respondData(c, http.StatusOK, dto.LoginResponse{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt,
			User:      session.User.Public(),
		})
	}
}

// GET /auth/verify
func Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			respondError(c, services.ErrUnauthenticated)
			return
		}
		respondData(c, http.StatusOK, user.Public())
	}
}

// POST /auth/logout
func Logout(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		revoked, err := auth.Logout(c.Request.Context(), middleware.CurrentClaims(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"message": "Logged out", "revoked": revoked})
	}
}
