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

type gradeUsecaser interface {
	List(ctx context.Context) ([]*domain.Grade, error)
	GetByID(ctx context.Context, id int64) (*domain.Grade, error)
	CreateGrade(ctx context.Context, token string, input repository.CreateGradeInput) (*domain.Grade, error)
	UpdateGrade(ctx context.Context, token string, id int64, patch repository.GradePatch) error
	DeleteGrade(ctx context.Context, token string, id int64) error
}

type GradeHandler struct {
	uc     gradeUsecaser
	logger *slog.Logger
}

func NewGradeHandler(uc gradeUsecaser, logger *slog.Logger) *GradeHandler {
	return &GradeHandler{uc: uc, logger: logger.With("component", "grade_handler")}
}

// GET /api/Grade
func (h *GradeHandler) List(ctx *gin.Context) {
	grades, err := h.uc.List(ctx.Request.Context())
	if err != nil {
		h.logger.Error("list grades", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, grades)
}

// GET /api/GradeID?gradeId=<id>
func (h *GradeHandler) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Query("gradeId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "gradeId must be an integer"})
		return
	}

	grade, err := h.uc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrGradeNotFound) {
			ctx.JSON(http.StatusOK, nil)
			return
		}
		h.logger.Error("get grade by id", "grade_id", id, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}
	ctx.JSON(http.StatusOK, grade)
}

type createGradeRequest struct {
	Grade struct {
		Name   string `json:"name"   binding:"required"`
		Value  int    `json:"grade"  binding:"min=0,max=100"`
		UserID int64  `json:"userId" binding:"required"`
	} `json:"grade" binding:"required"`
}

// POST /api/createGrade
func (h *GradeHandler) Create(ctx *gin.Context) {
	var req createGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	grade, err := h.uc.CreateGrade(ctx.Request.Context(), ctx.GetHeader(tokenHeader),
		repository.CreateGradeInput{
			Name:   req.Grade.Name,
			Value:  req.Grade.Value,
			UserID: req.Grade.UserID,
		})
	if err != nil {
		fail(ctx, h.logger, "create grade", err)
		return
	}

	ok(ctx, grade)
}

type updateGradeRequest struct {
	GradeID int64 `json:"gradeId" binding:"required"`
	Grade   struct {
		Name   *string `json:"name"`
		Value  *int    `json:"grade" binding:"omitempty,min=0,max=100"`
		UserID *int64  `json:"userId"`
	} `json:"grade" binding:"required"`
}

// POST /api/updateGrade
func (h *GradeHandler) Update(ctx *gin.Context) {
	var req updateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	err := h.uc.UpdateGrade(ctx.Request.Context(), ctx.GetHeader(tokenHeader), req.GradeID,
		repository.GradePatch{
			Name:   req.Grade.Name,
			Value:  req.Grade.Value,
			UserID: req.Grade.UserID,
		})
	if err != nil {
		fail(ctx, h.logger, "update grade", err)
		return
	}

	ok(ctx, nil)
}

type deleteGradeRequest struct {
	GradeID int64 `json:"gradeId" binding:"required"`
}

// POST /api/deleteGrade
func (h *GradeHandler) Delete(ctx *gin.Context) {
	var req deleteGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, envelope{Success: false, Error: err.Error()})
		return
	}

	if err := h.uc.DeleteGrade(ctx.Request.Context(), ctx.GetHeader(tokenHeader), req.GradeID); err != nil {
		fail(ctx, h.logger, "delete grade", err)
		return
	}

	ok(ctx, nil)
}
