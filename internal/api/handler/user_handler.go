package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homelink/smarthome-system/internal/api/middleware"
	"github.com/homelink/smarthome-system/internal/core/ports"
)

// UserHandler serves the authenticated account endpoints: profile reads and
// updates, password changes, logout, and account deletion.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type updateProfileRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// GetProfile handles GET /user/profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.authService.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateProfile handles PUT /user/profile. Empty fields are left unchanged.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.authService.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		AccountID: accountID,
		FullName:  req.FullName,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// ChangePassword handles POST /user/change-password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.ChangePassword(c.Request().Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "password changed"})
}

// Logout handles POST /auth/logout. The token's jti goes on the denylist
// until the token would have expired on its own.
func (h *UserHandler) Logout(c echo.Context) error {
	if _, err := ctxAccountID(c); err != nil {
		return err
	}

	jti, _ := c.Get(middleware.CtxJTI).(string)
	expiresAt, _ := c.Get(middleware.CtxExpiresAt).(time.Time)

	if err := h.authService.Logout(c.Request().Context(), jti, expiresAt); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

// DeleteAccount handles DELETE /user/delete.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	if err := h.authService.DeleteAccount(c.Request().Context(), accountID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "account deleted"})
}
