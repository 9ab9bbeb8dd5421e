package availability

import (
	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	availabilities := r.Group("/availabilities")
	{
		availabilities.GET("", h.List)
		availabilities.POST("", h.Create)
		availabilities.GET("/:id", h.Get)
		availabilities.PUT("/:id", h.Update)
		availabilities.DELETE("/:id", h.Delete)
		availabilities.PATCH("/:id/activate", h.Activate)
		availabilities.PATCH("/:id/deactivate", h.Deactivate)
		availabilities.GET("/psychologist/:psychologist_id", h.ListByPsychologist)
	}
}

func (h *Handler) List(c *gin.Context) {
	windows, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, windows, len(windows))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	window, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, window)
}

func (h *Handler) ListByPsychologist(c *gin.Context) {
	psychologistID, ok := handler.PathID(c, "psychologist_id")
	if !ok {
		return
	}
	windows, err := h.service.ListByPsychologist(c.Request.Context(), psychologistID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, windows, len(windows))
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	window, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, window)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	window, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, window)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	handler.NoContent(c)
}

func (h *Handler) Activate(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	window, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, window)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	window, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, window)
}
