package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FieldError is one entry of the machine-readable violation list
// returned on validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// envelope is the uniform response shape for every route.
type envelope struct {
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Success: false, Message: message})
}

func respondViolations(c *gin.Context, violations []FieldError) {
	c.JSON(http.StatusBadRequest, envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  violations,
	})
}

// respondInternal logs the real error and returns a generic message;
// store-internal text never reaches the client.
func respondInternal(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("Unhandled error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, envelope{Success: false, Message: "Internal server error"})
}

// bindJSON binds and validates the request body. On failure it writes
// the 400 response and returns false; handlers just return.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if violations := violationList(err); violations != nil {
			respondViolations(c, violations)
		} else {
			respondError(c, http.StatusBadRequest, "Invalid request body")
		}
		return false
	}
	return true
}

// idParam parses the :id path parameter, which must be a positive
// integer. On failure it writes the 400 response and returns false.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondViolations(c, []FieldError{{Field: "id", Message: "must be an integer greater than 0"}})
		return 0, false
	}
	return id, true
}
