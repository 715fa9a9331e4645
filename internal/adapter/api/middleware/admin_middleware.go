package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flicklit/internal/domain/repository"
)

type AdminMiddleware struct {
	userRepo repository.UserRepository
}

func NewAdminMiddleware(userRepo repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		userRepo: userRepo,
	}
}

// RequireAdmin must run after Authenticate so the uid is set.
func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := c.Get("uid").(string)
		if !ok || userID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}

		if user.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}

		return next(c)
	}
}
