package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
)

func SignUp(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignUpRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := u.SignUp(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(user, "User registered successfully"))
	}
}

func SignIn(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignInRequest
		if !bindJSON(c, &req) {
			return
		}

		result, err := u.SignIn(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, "User signed in successfully"))
	}
}

func RecoverPassword(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RecoverPasswordRequest
		if !bindJSON(c, &req) {
			return
		}

		if err := u.RecoverPassword(c.Request.Context(), &req); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Password updated successfully"))
	}
}
