package gallery

import (
	"errors"
	"strconv"
	"strings"

	"github.com/basedcaster/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxDeviceIDLen = 128

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/gallery", deviceID)
	g.GET("", h.list)
	g.POST("", h.save)
	g.DELETE("", h.clear)
	g.DELETE("/:createdAt", h.remove)
}

// deviceID resolves the caller's gallery id, issuing a fresh one when absent.
// The id is always echoed back so clients can persist it.
func deviceID(c *gin.Context) {
	id := strings.TrimSpace(c.GetHeader(DeviceHeader))
	if id == "" {
		id = uuid.NewString()
	} else if len(id) > maxDeviceIDLen {
		response.BadRequest(c, "device id too long")
		return
	}
	c.Set("deviceID", id)
	c.Header(DeviceHeader, id)
	c.Next()
}

// GET /api/gallery
func (h *Handler) list(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context(), c.GetString("deviceID"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, entries)
}

// POST /api/gallery
func (h *Handler) save(c *gin.Context) {
	var dto saveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	entry, err := h.svc.Save(c.Request.Context(), c.GetString("deviceID"), dto.Username, dto.ImageDataURL)
	if errors.Is(err, ErrImageRequired) {
		response.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.ActionOK(c, gin.H{"entry": entry})
}

// DELETE /api/gallery
func (h *Handler) clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), c.GetString("deviceID")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// DELETE /api/gallery/:createdAt
func (h *Handler) remove(c *gin.Context) {
	createdAt, err := strconv.ParseInt(c.Param("createdAt"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid createdAt")
		return
	}
	err = h.svc.Remove(c.Request.Context(), c.GetString("deviceID"), createdAt)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
