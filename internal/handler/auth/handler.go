package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/internal/handler"
	"github.com/synapsehq/synapse-api/internal/model"
	"github.com/synapsehq/synapse-api/internal/service/auth"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.OK(c, resp)
}

type registerRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	UserType model.UserType `json:"user_type" binding:"required,oneof=patient psychologist clinic"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.UserType)
	if err != nil {
		handler.Error(c, err)
		return
	}
	handler.Created(c, user)
}
