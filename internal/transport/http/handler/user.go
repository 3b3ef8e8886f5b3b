package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/usecase"
)

type userUsecaser interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, token string, id int64, input usecase.UpdateUserInput) error
	DeleteUser(ctx context.Context, token string, id int64) error
}

type UserHandler struct {
	uc     userUsecaser
	logger *slog.Logger
}

func NewUserHandler(uc userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger.With("component", "user_handler")}
}

// GET /api/User
// Queries are not enveloped: they return the rows, or a bare 500.
func (h *UserHandler) List(ctx *gin.Context) {
	users, err := h.uc.List(ctx.Request.Context())
	if err != nil {
		h.logger.Error("list users", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GET /api/UserID?userId=<id>
// A missing row is null, not an error.
func (h *UserHandler) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Query("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "userId must be an integer"})
		return
	}

	user, err := h.uc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}
		h.logger.Error("get user by id", "user_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

type createUserRequest struct {
	User userInput `json:"user" binding:"required"`
}

// POST /api/createUser
func (h *UserHandler) Create(ctx *gin.Context) {
	var req createUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	user, err := h.uc.CreateUser(ctx.Request.Context(), usecase.CreateUserInput{
		Username: req.User.Username,
		Password: req.User.Password,
		Email:    req.User.Email,
		Role:     req.User.Role,
		ClassID:  req.User.ClassID,
		Token:    ctx.GetHeader(tokenHeader),
	})
	if err != nil {
		fail(ctx, h.logger, "create user", err)
		return
	}

	ok(ctx, user)
}

type updateUserRequest struct {
	UserID int64 `json:"userId" binding:"required"`
	User   struct {
		Username *string `json:"username"`
		Password *string `json:"password"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Role     *string `json:"role"`
		ClassID  *int64  `json:"class_id"`
	} `json:"user" binding:"required"`
}

// POST /api/updateUser
func (h *UserHandler) Update(ctx *gin.Context) {
	var req updateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	err := h.uc.UpdateUser(ctx.Request.Context(), ctx.GetHeader(tokenHeader), req.UserID,
		usecase.UpdateUserInput{
			Username: req.User.Username,
			Password: req.User.Password,
			Email:    req.User.Email,
			Role:     req.User.Role,
			ClassID:  req.User.ClassID,
		})
	if err != nil {
		fail(ctx, h.logger, "update user", err)
		return
	}

	ok(ctx, nil)
}

type deleteUserRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

// POST /api/deleteUser
func (h *UserHandler) Delete(ctx *gin.Context) {
	var req deleteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	if err := h.uc.DeleteUser(ctx.Request.Context(), ctx.GetHeader(tokenHeader), req.UserID); err != nil {
		fail(ctx, h.logger, "delete user", err)
		return
	}

	ok(ctx, nil)
}
