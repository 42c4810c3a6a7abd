package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
)

const eventPermissionDenied = "you do not have permission to modify this event"

func ListEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.EventFilter{
			Search:       c.Query("search"),
			CategoryName: c.Query("category"),
			Date:         strings.TrimSpace(c.Query("date")),
		}
		if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
			id, err := helpers.ParseID(raw)
			if err != nil {
				badRequest(c, "invalid category_id: must be a positive integer")
				return
			}
			filter.CategoryID = id
		}

		events, err := e.ListEvents(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(models.NewEventViews(events), len(events)))
	}
}

func GetEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		event, err := e.GetEvent(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(models.NewEventView(event), ""))
	}
}

func CreateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateEventRequest
		if !bindJSON(c, &req) {
			return
		}

		creatorID, err := requesterID(c, req.CreatorID, "creatorId does not match the signed-in user")
		if err != nil {
			respondError(c, err)
			return
		}
		req.CreatorID = creatorID

		event, err := e.CreateEvent(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(models.NewEventView(event), "Event created successfully"))
	}
}

func EditEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.EditEventRequest
		if !bindJSON(c, &req) {
			return
		}

		requester, err := requesterID(c, req.CreatorID, eventPermissionDenied)
		if err != nil {
			respondError(c, err)
			return
		}
		req.CreatorID = requester

		event, err := e.UpdateEvent(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(models.NewEventView(event), "Event updated successfully"))
	}
}

func DeleteEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DeleteEventRequest
		if !bindJSON(c, &req) {
			return
		}

		requester, err := requesterID(c, req.CreatorID, eventPermissionDenied)
		if err != nil {
			respondError(c, err)
			return
		}
		req.CreatorID = requester

		if err := e.DeleteEvent(c.Request.Context(), &req); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}

// ListAttendees serves both /events/:id/attendees and
// /registrations/:eventId/attendees; param names the path parameter.
func ListAttendees(e *services.EventService, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, param)
		if !ok {
			return
		}

		list, err := e.ListAttendees(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(list, ""))
	}
}

func ListActivity(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				badRequest(c, "invalid limit parameter")
				return
			}
			limit = n
		}

		entries, err := e.ListActivity(c.Request.Context(), id, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(entries, len(entries)))
	}
}

func ListCategories(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := e.ListCategories(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(categories, len(categories)))
	}
}
