package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homelink/smarthome-system/internal/api/middleware"
)

// ctxAccountID extracts the account ID injected by the Auth middleware and
// performs a fast-fail check before any service call: an empty account ID
// means the middleware never ran or the token carried no subject, so the
// request cannot be attributed to an account.
func ctxAccountID(c echo.Context) (string, error) {
	accountID, _ := c.Get(middleware.CtxAccountID).(string)
	if accountID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return accountID, nil
}
