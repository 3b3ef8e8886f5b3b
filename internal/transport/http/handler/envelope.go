package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the single response shape of every mutation. Denials and
// failures come back as success=false with a message, always under HTTP 200:
// the operation was handled, it just didn't pass.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func okWithToken(ctx *gin.Context, data any, token string) {
	ctx.JSON(http.StatusOK, envelope{Success: true, Data: data, Token: token})
}

func denied(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, envelope{Success: false, Error: message})
}
