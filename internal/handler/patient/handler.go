package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/service/patient"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.List)
		patients.POST("", h.Create)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, patients, len(patients))
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
	var req model.CreatePatientRequest
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

	var req model.UpdatePatientRequest
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
