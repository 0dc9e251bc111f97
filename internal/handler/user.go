package handler

import (
	"errors"
	"net/http"

	"gradebook/internal/models"
	"gradebook/internal/repository"
	"gradebook/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	ListRoles(c *gin.Context)
	AssignRole(c *gin.Context)
	RevokeRole(c *gin.Context)
}

type userHandler struct {
	users       repository.UserRepository
	authService service.AuthService
	logger      *zap.Logger
}

func NewUserHandler(users repository.UserRepository, authService service.AuthService, logger *zap.Logger) UserHandler {
	return &userHandler{users: users, authService: authService, logger: logger}
}

func (h *userHandler) List(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		respondInternal(c, h.logger, err)
		return
	}
	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	respondOK(c, views)
}

func (h *userHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, user.View())
}

func (h *userHandler) Create(c *gin.Context) {
	var req models.CreateUserInput
	if !bindJSON(c, &req) {
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		respondInternal(c, h.logger, err)
		return
	}

	user, err := h.users.Create(req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondError(c, http.StatusBadRequest, "A user with that email already exists")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondCreated(c, user.View())
}

func (h *userHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req models.UpdateUserInput
	if !bindJSON(c, &req) {
		return
	}

	var hash *string
	if req.Password != nil {
		hashed, err := h.authService.HashPassword(*req.Password)
		if err != nil {
			respondInternal(c, h.logger, err)
			return
		}
		hash = &hashed
	}

	user, err := h.users.Update(id, req.Name, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, user.View())
}

func (h *userHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.users.Delete(id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrReferenced):
			respondError(c, http.StatusConflict, "User is referenced and cannot be deleted")
		default:
			respondInternal(c, h.logger, err)
		}
		return
	}
	respondOK(c, gin.H{"id": id})
}

func (h *userHandler) ListRoles(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := h.users.GetByID(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	roles, err := h.users.Roles(id)
	if err != nil {
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, roles)
}

func (h *userHandler) AssignRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req models.AssignRoleInput
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.AssignRole(id, req.Role); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrInvalidReference):
			respondError(c, http.StatusNotFound, "Role not found")
		case errors.Is(err, repository.ErrDuplicate):
			respondError(c, http.StatusBadRequest, "Role is already assigned to this user")
		default:
			respondInternal(c, h.logger, err)
		}
		return
	}
	respondOK(c, gin.H{"userId": id, "role": req.Role})
}

func (h *userHandler) RevokeRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	role := c.Param("role")
	if err := h.users.RevokeRole(id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Role assignment not found")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}
	respondOK(c, gin.H{"userId": id, "role": role})
}
