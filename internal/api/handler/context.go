package handler

import "github.com/labstack/echo/v4"

// ctxSession returns the session bound by the LoadSession middleware.
// Both values are empty for anonymous callers.
func ctxSession(c echo.Context) (sessionID, username string) {
	sessionID, _ = c.Get("session_id").(string)
	username, _ = c.Get("username").(string)
	return sessionID, username
}
