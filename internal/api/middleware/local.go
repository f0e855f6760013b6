package middleware

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LocalOnly rejects requests that do not originate from the loopback
// interface. The board belongs to whoever sits at this machine.
func LocalOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
			if err != nil {
				host = c.Request().RemoteAddr
			}
			ip := net.ParseIP(host)
			if ip == nil || !ip.IsLoopback() {
				return echo.NewHTTPError(http.StatusForbidden, "board is only reachable from this machine")
			}
			return next(c)
		}
	}
}
