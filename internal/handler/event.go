package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
)

func (h *Handler) CreateEvent(c *gin.Context) {
	var input model.CreateEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	date, err := time.Parse(time.RFC3339, input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}
	if input.MaxImages <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_images"})
		return
	}
	event, err := h.events.CreateEvent(c.Request.Context(), currentUserID(c), input.Name, date, input.MaxImages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusCreated, model.CreateEventResponse{ID: event.ID.String(), Slug: event.Slug})
}

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.events.GetEvents(c.Request.Context(), currentUserID(c), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}
	resp := model.EventsListResponse{Events: []model.EventInfoResponse{}}
	for _, ev := range events {
		resp.Events = append(resp.Events, eventInfo(ev))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetEventInfo(c *gin.Context) {
	event, err := h.events.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, eventInfo(*event))
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	event, err := h.events.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err := h.events.DeleteEvent(c.Request.Context(), currentUserID(c), event.ID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}

func (h *Handler) PublishEvent(c *gin.Context) {
	event, err := h.events.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	link, err := h.events.PublishEvent(c.Request.Context(), currentUserID(c), event.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, model.PublishEventResponse{Link: link})
}

func (h *Handler) GetEventPhotos(c *gin.Context) {
	event, err := h.events.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	photos, sort, err := h.events.GetEventPhotos(c.Request.Context(), event.ID, c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get photos"})
		return
	}
	c.JSON(http.StatusOK, model.EventPhotosResponse{Photos: photos, Sort: sort})
}

func (h *Handler) UpdateEventCover(c *gin.Context) {
	event, err := h.events.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	var input model.UpdateEventCoverRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	photoID, err := uuid.Parse(input.PhotoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo id"})
		return
	}
	if err := h.events.UpdateEventCover(c.Request.Context(), currentUserID(c), event.ID, photoID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}

func eventInfo(ev model.Event) model.EventInfoResponse {
	return model.EventInfoResponse{
		ID:                ev.ID.String(),
		UserID:            ev.UserID.String(),
		Slug:              ev.Slug,
		Name:              ev.Name,
		Date:              ev.Date.Format(time.RFC3339),
		CreatedAt:         ev.CreatedAt.Format(time.RFC3339),
		MaxImages:         ev.MaxImages,
		CoverURL:          ev.CoverURL,
		CoverThumbnailURL: ev.CoverThumbnailURL,
		UserName:          ev.UserName,
		IsPublished:       ev.IsPublished,
		CountPhotos:       ev.CountPhotos,
	}
}
