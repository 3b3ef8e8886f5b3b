package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/usecase"
)

// tokenHeader is the request-scoped field identifying the caller.
const tokenHeader = "token"

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, input usecase.LoginInput) (*domain.User, string, error)
}

type AuthHandler struct {
	uc     authUsecaser
	logger *slog.Logger
}

func NewAuthHandler(uc authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger.With("component", "auth_handler")}
}

type userInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Role     string `json:"role"     binding:"required"`
	ClassID  *int64 `json:"class_id"`
}

type registerRequest struct {
	User userInput `json:"user" binding:"required"`
}

// POST /api/register
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	user, token, err := h.uc.Register(ctx.Request.Context(), usecase.RegisterInput{
		Username: req.User.Username,
		Password: req.User.Password,
		Email:    req.User.Email,
		Role:     req.User.Role,
		ClassID:  req.User.ClassID,
		Token:    ctx.GetHeader(tokenHeader),
	})
	if err != nil {
		fail(ctx, h.logger, "register", err)
		return
	}

	okWithToken(ctx, user, token)
}

type loginRequest struct {
	Login struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	} `json:"login" binding:"required"`
}

// POST /api/login
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	user, token, err := h.uc.Login(ctx.Request.Context(), usecase.LoginInput{
		Username: req.Login.Username,
		Password: req.Login.Password,
		Token:    ctx.GetHeader(tokenHeader),
	})
	if err != nil {
		fail(ctx, h.logger, "login", err)
		return
	}

	okWithToken(ctx, user, token)
}
