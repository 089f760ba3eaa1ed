package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"live-foto-event-back/internal/model"
	"live-foto-event-back/internal/uploader"
)

// UploadFiles принимает пачку файлов для события.
// Ответ — пофайловый итог: success_count/error_count; частичный отказ
// не блокирует галерею и не возвращает 5xx.
func (h *Handler) UploadFiles(c *gin.Context) {
	var input model.UploadFilesRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if len(input.Files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files"})
		return
	}

	userID := currentUserID(c)
	event, err := h.events.GetEventBySlug(c.Request.Context(), input.EventSlug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	remaining, err := h.events.RemainingQuota(c.Request.Context(), event, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check quota"})
		return
	}

	resp, err := h.uploads.UploadFiles(
		c.Request.Context(), userID, event, remaining, input.Files, input.Caption)
	if err != nil {
		switch {
		case errors.Is(err, uploader.ErrTooManyFiles):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Photo quota exceeded"})
		case errors.Is(err, uploader.ErrInvalidType), errors.Is(err, uploader.ErrTooLarge):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeletePhoto(c *gin.Context) {
	photoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo id"})
		return
	}
	if err := h.uploads.DeletePhoto(c.Request.Context(), currentUserID(c), photoID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	c.JSON(http.StatusOK, model.BooleanResponse{Success: true})
}
