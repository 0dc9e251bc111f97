package handler

import (
	"errors"
	"net/http"

	"gradebook/internal/models"
	"gradebook/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler interface {
	Login(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) AuthHandler {
	return &authHandler{authService: authService, logger: logger}
}

func (h *authHandler) Login(c *gin.Context) {
	var req models.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Unknown email and wrong password are deliberately
			// indistinguishable.
			respondError(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		respondInternal(c, h.logger, err)
		return
	}

	respondOK(c, gin.H{"token": token, "email": user.Email})
}
