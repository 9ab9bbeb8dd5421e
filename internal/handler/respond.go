package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/synapsehq/synapse-api/pkg/errors"
)

// Response is the envelope every endpoint returns.
//
// Success:  {"success": true, "data": ...}
// Failure:  {"success": false, "error": {"code": ..., "message": ..., "field": ...}}
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
}

// ListData wraps collection payloads with their count.
type ListData struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func List(c *gin.Context, items interface{}, count int) {
	OK(c, ListData{Items: items, Count: count})
}

// Error translates a service error into the envelope, mapping the error
// code to its HTTP status.
func Error(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   &ErrorBody{Code: errors.CodeInternal, Message: "internal server error"},
		})
		return
	}
	c.JSON(errors.HTTPStatus(appErr), Response{
		Success: false,
		Error: &ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Field:   appErr.Field,
		},
	})
}

// BindError reports a JSON binding failure as a validation error.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   &ErrorBody{Code: errors.CodeValidation, Message: err.Error()},
	})
}

// PathID parses the named int64 path parameter.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   &ErrorBody{Code: errors.CodeValidation, Message: "invalid " + name, Field: name},
		})
		return 0, false
	}
	return id, true
}
