package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status string      `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

// ErrorResponse 业务错误响应，error 为稳定的错误类型标识
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func Respond(c *gin.Context, httpStatus int, status string, message string, data interface{}) {
	c.JSON(httpStatus, Response{
		Status: status,
		Msg:    message,
		Data:   data,
	})
}

// RespondSuccess sends a success response with data.
func RespondSuccess(c *gin.Context, data interface{}) {
	Respond(c, http.StatusOK, "success", "", data)
}

// RespondErrorKind sends {"error": kind, "message": message}.
func RespondErrorKind(c *gin.Context, httpStatus int, kind, message string) {
	c.JSON(httpStatus, ErrorResponse{Error: kind, Message: message})
}

// RespondErrorAbort 返回错误并中止后续处理
func RespondErrorAbort(c *gin.Context, httpStatus int, kind, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{Error: kind, Message: message})
}
