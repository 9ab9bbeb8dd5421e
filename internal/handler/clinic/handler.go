package clinic

import (
	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/service/clinic"
)

type Handler struct {
	service *clinic.Service
}

func NewHandler(service *clinic.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.GET("", h.List)
		clinics.POST("", h.Create)
		clinics.GET("/:id", h.Get)
		clinics.PUT("/:id", h.Update)
		clinics.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	clinics, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, clinics, len(clinics))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	cl, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, cl)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	cl, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, cl)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	cl, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, cl)
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
