package handler

import (
	"errors"
	"net/http"

	"gradebook/internal/models"
	"gradebook/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StudentHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type studentHandler struct {
	students repository.StudentRepository
	logger   *zap.Logger
}

func NewStudentHandler(students repository.StudentRepository, logger *zap.Logger) StudentHandler {
	return &studentHandler{students: students, logger: logger}
}

func (h *studentHandler) List(c *gin.Context) {
	students, err := h.students.List(c.Query("search"))
	if err != nil {
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, students)
}

func (h *studentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	student, err := h.students.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Student not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, student)
}

func (h *studentHandler) Create(c *gin.Context) {
	var req models.StudentInput
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Create(req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondError(c, http.StatusBadRequest, "A student with that national id already exists")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondCreated(c, student)
}

func (h *studentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req models.StudentInput
	if !bindJSON(c, &req) {
		return
	}
	student, err := h.students.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(c, http.StatusNotFound, "Student not found")
		case errors.Is(err, repository.ErrDuplicate):
			respondError(c, http.StatusBadRequest, "A student with that national id already exists")
		default:
			respondInternal(c, h.logger, err)
		}
		return
	}
	respondOK(c, student)
}

func (h *studentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.students.Delete(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(c, http.StatusNotFound, "Student not found")
		case errors.Is(err, repository.ErrReferenced):
			respondError(c, http.StatusConflict, "Student has grades and cannot be deleted")
		default:
			respondInternal(c, h.logger, err)
		}
		return
	}
	respondOK(c, gin.H{"id": id})
}
