package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "flicklit/pkg/errors"
)

type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.JSON(appErr.Status, Response{
			Success:   false,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Error: &ErrorInfo{
				Code:    appErr.Code,
				Message: appErr.Message,
			},
		})
	}

	return c.JSON(http.StatusInternalServerError, Response{
		Success:   false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Error: &ErrorInfo{
			Code:    "INTERNAL_ERROR",
			Message: "An unexpected error occurred",
		},
	})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = field + " is required"
		case "min":
			message = field + " must be at least " + param
		case "max":
			message = field + " must be at most " + param
		case "oneof":
			message = field + " must be one of: " + param
		case "email":
			message = field + " must be a valid email address"
		default:
			message = field + " is invalid"
		}

		return c.JSON(http.StatusBadRequest, Response{
			Success:   false,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Error: &ErrorInfo{
				Code:    "VALIDATION_ERROR",
				Message: message,
			},
		})
	}

	return c.JSON(http.StatusBadRequest, Response{
		Success:   false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Error: &ErrorInfo{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid input data",
		},
	})
}
