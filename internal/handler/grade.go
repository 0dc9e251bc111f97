package handler

import (
	"errors"
	"net/http"

	"gradebook/internal/models"
	"gradebook/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GradeHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type gradeHandler struct {
	grades repository.GradeRepository
	logger *zap.Logger
}

func NewGradeHandler(grades repository.GradeRepository, logger *zap.Logger) GradeHandler {
	return &gradeHandler{grades: grades, logger: logger}
}

func (h *gradeHandler) List(c *gin.Context) {
	rows, err := h.grades.List(c.Query("student"), c.Query("subject"))
	if err != nil {
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, rows)
}

func (h *gradeHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	grade, err := h.grades.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Grade not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, grade)
}

func (h *gradeHandler) Create(c *gin.Context) {
	var req models.GradeInput
	if !bindJSON(c, &req) {
		return
	}
	grade, err := h.grades.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			respondError(c, http.StatusBadRequest, "Grades for this student and subject already exist")
		case errors.Is(err, repository.ErrInvalidReference):
			respondError(c, http.StatusBadRequest, "Student or subject does not exist")
		default:
			respondInternal(c, h.logger, err)
		}
		return
	}
	respondCreated(c, grade)
}

func (h *gradeHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req models.GradeUpdateInput
	if !bindJSON(c, &req) {
		return
	}
	grade, err := h.grades.Update(id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Grade not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, grade)
}

func (h *gradeHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.grades.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Grade not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}
