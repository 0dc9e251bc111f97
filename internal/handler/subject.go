package handler

import (
	"errors"
	"net/http"

	"gradebook/internal/models"
	"gradebook/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubjectHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type subjectHandler struct {
	subjects repository.SubjectRepository
	logger   *zap.Logger
}

func NewSubjectHandler(subjects repository.SubjectRepository, logger *zap.Logger) SubjectHandler {
	return &subjectHandler{subjects: subjects, logger: logger}
}

func (h *subjectHandler) List(c *gin.Context) {
	subjects, err := h.subjects.List()
	if err != nil {
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, subjects)
}

func (h *subjectHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	subject, err := h.subjects.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Subject not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, subject)
}

func (h *subjectHandler) Create(c *gin.Context) {
	var req models.SubjectInput
	if !bindJSON(c, &req) {
		return
	}
	subject, err := h.subjects.Create(req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondError(c, http.StatusBadRequest, "The subject code already exists")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondCreated(c, subject)
}

func (h *subjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req models.SubjectInput
	if !bindJSON(c, &req) {
		return
	}
	subject, err := h.subjects.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(c, http.StatusNotFound, "Subject not found")
		case errors.Is(err, repository.ErrDuplicate):
			respondError(c, http.StatusBadRequest, "The subject code already exists")
		default:
			respondInternal(c, h.logger, err)
		}
		return
	}
	respondOK(c, subject)
}

func (h *subjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.subjects.Delete(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(c, http.StatusNotFound, "Subject not found")
		case errors.Is(err, repository.ErrReferenced):
			respondError(c, http.StatusConflict, "Subject has grades and cannot be deleted")
		default:
			respondInternal(c, h.logger, err)
		}
		return
	}
	respondOK(c, gin.H{"id": id})
}
