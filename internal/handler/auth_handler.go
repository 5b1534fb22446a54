package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AchintyaNigam/my-rail/internal/dto"
	"github.com/AchintyaNigam/my-rail/internal/middleware"
	"github.com/AchintyaNigam/my-rail/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	auth := e.Group("/api/v1/auth")
	auth.POST("/login", h.Login)
	auth.POST("/signup", h.Signup)
	auth.GET("/me", h.Me, middleware.RequireAuth(h.svc))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.svc.Signup(c.Request().Context(), service.Signup{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AgreeToTerms:    req.AgreeToTerms,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "signup successful"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := c.Get(middleware.ClaimsKey).(*service.Claims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, service.ErrInvalidToken.Error())
	}
	return c.JSON(http.StatusOK, dto.UserResponse{ID: claims.Subject, FullName: claims.Name, Email: claims.Email})
}
