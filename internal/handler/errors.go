package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ViviCity-App/internal/application"
	"ViviCity-App/internal/domain/repository"
	"ViviCity-App/internal/usecase"
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// respondError はエラーの種類に応じたステータスでJSONを返す
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, application.ErrMissingFields):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, repository.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrFetchFailed):
		status = http.StatusBadGateway
	case errors.Is(err, application.ErrUsersStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
