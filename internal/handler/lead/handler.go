package lead

import (
	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/service/lead"
)

type Handler struct {
	service *lead.Service
}

func NewHandler(service *lead.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	leads := r.Group("/leads")
	{
		leads.GET("", h.List)
		leads.POST("", h.Create)
		leads.GET("/:id", h.Get)
		leads.PUT("/:id", h.Update)
		leads.DELETE("/:id", h.Delete)
		leads.PATCH("/:id/contacted", h.MarkContacted)
		leads.PATCH("/:id/lost", h.MarkLost)
		leads.PATCH("/:id/convert", h.Convert)
	}
}

func (h *Handler) List(c *gin.Context) {
	leads, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, leads, len(leads))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	l, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, l)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	l, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, l)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	l, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, l)
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

func (h *Handler) MarkContacted(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.LeadContactedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handler.BindError(c, err)
			return
		}
	}

	l, err := h.service.MarkContacted(c.Request.Context(), id, req.Notes)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, l)
}

func (h *Handler) MarkLost(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.LeadLostRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handler.BindError(c, err)
			return
		}
	}

	l, err := h.service.MarkLost(c.Request.Context(), id, req.Reason)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, l)
}

func (h *Handler) Convert(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.LeadConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	l, err := h.service.ConvertToPatient(c.Request.Context(), id, req.PatientID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, l)
}
