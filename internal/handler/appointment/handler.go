package appointment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/service/appointment"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.POST("", h.Schedule)
		appointments.POST("/available-slots", h.AvailableSlots)
		appointments.GET("/:id", h.Get)
		appointments.DELETE("/:id", h.Delete)
		appointments.PATCH("/:id/cancel", h.Cancel)
		appointments.PATCH("/:id/confirm", h.Confirm)
		appointments.PATCH("/:id/complete", h.Complete)
	}
}

// List returns all appointments, or those of one patient or psychologist
// when the matching query parameter is present.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		appointments []*model.Appointment
		err          error
	)
	switch {
	case c.Query("patient_id") != "":
		patientID, perr := strconv.ParseInt(c.Query("patient_id"), 10, 64)
		if perr != nil {
			handler.BindError(c, perr)
			return
		}
		appointments, err = h.service.ListByPatient(ctx, patientID)
	case c.Query("psychologist_id") != "":
		psychologistID, perr := strconv.ParseInt(c.Query("psychologist_id"), 10, 64)
		if perr != nil {
			handler.BindError(c, perr)
			return
		}
		appointments, err = h.service.ListByPsychologist(ctx, psychologistID)
	default:
		appointments, err = h.service.List(ctx)
	}
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, appointments, len(appointments))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	appt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, appt)
}

func (h *Handler) Schedule(c *gin.Context) {
	var req model.ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	appt, err := h.service.Schedule(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, appt)
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	var req model.AvailableSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), req.PsychologistID, req.Date, req.Duration)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.List(c, slots, len(slots))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handler.BindError(c, err)
			return
		}
	}

	appt, err := h.service.Cancel(c.Request.Context(), id, req.CancellationReason)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, appt)
}

func (h *Handler) Confirm(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	appt, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, appt)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}
	appt, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, appt)
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
