package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"flicklit/internal/usecase"
	"flicklit/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"required,min=2,max=32"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, authResponse{
		Token: result.Token,
		User: userResponse{
			ID:       result.User.ID,
			Email:    result.User.Email,
			Nickname: result.User.Nickname,
		},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{
		Token: result.Token,
		User: userResponse{
			ID:       result.User.ID,
			Email:    result.User.Email,
			Nickname: result.User.Nickname,
		},
	})
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.authUseCase.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, userResponse{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
	})
}

func (h *AuthHandler) UpdateNickname(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req struct {
		Nickname string `json:"nickname" validate:"required,min=2,max=32"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.UpdateNickname(c.Request().Context(), userID, req.Nickname)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, userResponse{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
	})
}
