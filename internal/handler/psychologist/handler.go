package psychologist

import (
	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/service/psychologist"
)

type Handler struct {
	service *psychologist.Service
}

func NewHandler(service *psychologist.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	psychologists := r.Group("/psychologists")
	{
		psychologists.GET("", h.List)
		psychologists.POST("", h.Create)
		psychologists.GET("/:id", h.Get)
		psychologists.PUT("/:id", h.Update)
		psychologists.DELETE("/:id", h.Delete)
		psychologists.PATCH("/:id/activate", h.Activate)
		psychologists.PATCH("/:id/deactivate", h.Deactivate)
	}
}

// List returns all psychologists; ?active_only=true filters to active ones.
func (h *Handler) List(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	psychologists, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, psychologists, len(psychologists))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, p)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePsychologistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePsychologistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, p)
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
	p, err := h.service.Activate(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, p)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.Deactivate(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, p)
}
