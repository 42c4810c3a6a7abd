package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
)

const registrationDenied = "you can only manage your own registrations"

func Register(r *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if !bindJSON(c, &req) {
			return
		}

		userID, err := requesterID(c, req.UserID, registrationDenied)
		if err != nil {
			respondError(c, err)
			return
		}
		req.UserID = userID

		reg, err := r.Register(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reg, "RSVP saved"))
	}
}

func Unregister(r *services.RegistrationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UnregisterRequest
		if !bindJSON(c, &req) {
			return
		}

		userID, err := requesterID(c, req.UserID, registrationDenied)
		if err != nil {
			respondError(c, err)
			return
		}
		req.UserID = userID

		if err := r.Unregister(c.Request.Context(), &req); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "RSVP withdrawn"))
	}
}
