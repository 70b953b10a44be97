package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/middleware"
	"social-service/internal/models"
	"social-service/internal/services"
)

const eventListPath = "/events"

type eventRequest struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date"`
}

func (r eventRequest) input() services.EventInput {
	return services.EventInput{Title: r.Title, Description: r.Description, Date: r.Date}
}

type EventHandler struct {
	events services.EventService
}

func NewEventHandler(events services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Dashboard returns the caller's events for the current month.
func (h *EventHandler) Dashboard(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	events, err := h.events.ListCurrentMonth(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"form":   gin.H{"title": "", "description": "", "date": ""},
	})
}

func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.events.Create(c.Request.Context(), middleware.PrincipalFrom(c), req.input())
	if err != nil {
		respondError(c, err, eventListPath)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.ListAll(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		respondError(c, err, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) EditForm(c *gin.Context) {
	id, ok := intParam(c, "id", "event id")
	if !ok {
		return
	}
	event, err := h.events.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		respondError(c, err, eventListPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event": event,
		"form": gin.H{
			"title":       event.Title,
			"description": event.Description,
			"date":        event.Date.Format(models.EventDateLayout),
		},
	})
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id", "event id")
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.events.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req.input())
	if err != nil {
		respondError(c, err, eventListPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id", "event id")
	if !ok {
		return
	}
	if err := h.events.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		respondError(c, err, eventListPath)
		return
	}
	c.Status(http.StatusNoContent)
}
