package middleware

import (
	"github.com/labstack/echo/v4"
)

// ObserverFunc is invoked after a handler completes, with the final response
// status. Hooks observe; they cannot change the response.
type ObserverFunc func(c echo.Context, status int)

// Observe runs every hook once the handler chain has finished. This replaces
// wrapping the response writer: hooks get the committed status through an
// explicit pipeline step instead of intercepting I/O primitives.
func Observe(hooks ...ObserverFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}
			for _, hook := range hooks {
				hook(c, status)
			}
			return err
		}
	}
}
