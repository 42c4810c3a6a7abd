package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/middleware"
	"github.com/joshua-takyi/eventhub/internal/models"
)

// statusFor maps an error kind onto its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the failure envelope. Internal failures are attached
// to the context for ErrorHandler to log and are never described to the
// client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	requestID := c.GetString(middleware.RequestIDKey)

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		resp := models.ErrorResponse("Internal server error")
		resp.RequestID = requestID
		c.JSON(status, resp)
		return
	}

	resp := models.ErrorResponse(err.Error())
	var appErr *models.Error
	if errors.As(err, &appErr) {
		resp.Error = appErr.Message
		resp.Details = appErr.Details
	}
	resp.RequestID = requestID
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, msg string) {
	respondError(c, models.InvalidInput("%s", msg))
}

// bindJSON decodes the body, answering 400 itself on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, &models.Error{
			Kind:    models.ErrValidation,
			Message: "invalid request payload",
			Details: []string{err.Error()},
		})
		return false
	}
	return true
}

// requesterID settles who is making the request. A bearer token wins; a
// body-supplied id that disagrees with it is rejected with deniedMsg.
// Without a token the body id is taken as is.
func requesterID(c *gin.Context, bodyID uint, deniedMsg string) (uint, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return bodyID, nil
	}
	if bodyID != 0 && bodyID != claims.UserID {
		return 0, models.Forbidden(deniedMsg)
	}
	return claims.UserID, nil
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := helpers.ParseID(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name+": must be a positive integer")
		return 0, false
	}
	return id, true
}
