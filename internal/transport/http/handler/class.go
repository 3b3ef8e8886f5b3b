package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
)

type classUsecaser interface {
	List(ctx context.Context) ([]*domain.Class, error)
	GetByID(ctx context.Context, id int64) (*domain.Class, error)
	CreateClass(ctx context.Context, token, name string) (*domain.Class, error)
	UpdateClass(ctx context.Context, token string, id int64, patch repository.ClassPatch) error
	DeleteClass(ctx context.Context, token string, id int64) error
}

type ClassHandler struct {
	uc     classUsecaser
	logger *slog.Logger
}

func NewClassHandler(uc classUsecaser, logger *slog.Logger) *ClassHandler {
	return &ClassHandler{uc: uc, logger: logger.With("component", "class_handler")}
}

// GET /api/Class
func (h *ClassHandler) List(ctx *gin.Context) {
	classes, err := h.uc.List(ctx.Request.Context())
	if err != nil {
		h.logger.Error("list classes", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, classes)
}

// GET /api/ClassID?classId=<id>
func (h *ClassHandler) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Query("classId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "classId must be an integer"})
		return
	}

	class, err := h.uc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrClassNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}
		h.logger.Error("get class by id", "class_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, class)
}

type createClassRequest struct {
	Class struct {
		Name string `json:"name" binding:"required"`
	} `json:"class" binding:"required"`
}

// POST /api/createClass
func (h *ClassHandler) Create(ctx *gin.Context) {
	var req createClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	class, err := h.uc.CreateClass(ctx.Request.Context(), ctx.GetHeader(tokenHeader), req.Class.Name)
	if err != nil {
		fail(ctx, h.logger, "create class", err)
		return
	}

	ok(ctx, class)
}

type updateClassRequest struct {
	ClassID int64 `json:"classId" binding:"required"`
	Class   struct {
		Name *string `json:"name"`
	} `json:"class" binding:"required"`
}

// POST /api/updateClass
func (h *ClassHandler) Update(ctx *gin.Context) {
	var req updateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	err := h.uc.UpdateClass(ctx.Request.Context(), ctx.GetHeader(tokenHeader), req.ClassID,
		repository.ClassPatch{Name: req.Class.Name})
	if err != nil {
		fail(ctx, h.logger, "update class", err)
		return
	}

	ok(ctx, nil)
}

type deleteClassRequest struct {
	ClassID int64 `json:"classId" binding:"required"`
}

// POST /api/deleteClass
func (h *ClassHandler) Delete(ctx *gin.Context) {
	var req deleteClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	if err := h.uc.DeleteClass(ctx.Request.Context(), ctx.GetHeader(tokenHeader), req.ClassID); err != nil {
		fail(ctx, h.logger, "delete class", err)
		return
	}

	ok(ctx, nil)
}
