package pkg

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/acmlab/labsite/internal/domain"
)

// The wire contract is deliberately small: expected failures always produce
// {"error": <message>} with a mapped status code, successful mutations produce
// {"success": true, "message": <text>, ...}, and reads return their payload
// bare. Front-end code switches on the presence of the "error" key.

// Error sends the standard error envelope. If err is a *domain.AppError its
// code is mapped to the appropriate HTTP status; otherwise 500 is returned
// with a generic message so internal details never leak to callers.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	msg := "internal error"
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Code != domain.CodeInternal {
		msg = appErr.Message
	}

	c.JSON(status, gin.H{"error": msg})
}

// OK sends a 200 response with the payload as-is.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Mutation sends the success envelope for a completed mutation. extra fields
// (ids, created records) are merged into the envelope.
func Mutation(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// BindJSON binds the request body to obj. On failure it sends the error
// envelope and returns false. validator.ValidationErrors are flattened to a
// single readable message.
//
// Usage in handlers:
//
//	if !pkg.BindJSON(c, &req) { return }
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return false
	}
	return true
}

// bindErrorMessage renders a binding failure as one human-readable line.
func bindErrorMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		msg := strings.ToLower(fe.Field()) + " " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}
