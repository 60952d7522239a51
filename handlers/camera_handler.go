package handlers

import (
	"errors"
	"net/http"

	"github.com/devsparksuporte-web/PotencialCameras/logger"
	"github.com/devsparksuporte-web/PotencialCameras/services"
	"github.com/devsparksuporte-web/PotencialCameras/validation"

	"github.com/gin-gonic/gin"
)

type CameraHandler struct {
	service *services.CameraService
}

func NewCameraHandler(service *services.CameraService) *CameraHandler {
	return &CameraHandler{
		service: service,
	}
}

func (h *CameraHandler) GetCameras(c *gin.Context) {
	cameras, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cameras": cameras})
}

func (h *CameraHandler) GetCamera(c *gin.Context) {
	camera, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"camera": camera})
}

func (h *CameraHandler) CreateCamera(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	camera, err := h.service.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"camera": camera})
}

func (h *CameraHandler) UpdateCamera(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	// camera is nil when the id matched nothing; the body is then {"camera": null}
	camera, err := h.service.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"camera": camera})
}

func (h *CameraHandler) DeleteCamera(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondError writes the status and body for an error returned by the
// camera service.
func respondError(c *gin.Context, err error) {
	var verr *validation.ValidationError
	var serr *services.StorageError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": verr.Violations})
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
	case errors.As(err, &serr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": serr.Message})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled request error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
