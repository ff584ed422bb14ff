package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/piracy-detector/internal/api/middleware"
	"github.com/99minutos/piracy-detector/internal/core/domain"
	"github.com/99minutos/piracy-detector/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	tokens       ports.SessionTokens
	cookieSecure bool
}

func NewAuthHandler(authService ports.AuthService, tokens ports.SessionTokens, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, cookieSecure: cookieSecure}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      plain
// @Param        body  body      registerRequest  true  "Credentials"
// @Success      200   {string}  string  "User registered successfully."
// @Failure      400   {string}  string  "User already exists."
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, msgInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return c.String(http.StatusBadRequest, msgUserExists)
		case errors.Is(err, domain.ErrInvalidInput):
			return c.String(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.String(http.StatusOK, msgRegistered)
}

// Login verifies credentials and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      plain
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {string}  string  "Login successful!"
// @Failure      400   {string}  string  "User not found. | Invalid credentials."
// @Failure      500   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, msgInvalidPayload)
	}

	previous, _ := ctxSession(c)
	sess, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, previous)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.String(http.StatusBadRequest, msgUserNotFound)
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.String(http.StatusBadRequest, msgBadCredentials)
		}
		return err
	}

	token, err := h.tokens.Issue(*sess)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(token, sess.ExpiresAt))

	return c.String(http.StatusOK, msgLoggedIn)
}

// Logout ends the caller's session. Calling it without a session is a no-op.
//
// @Summary      Logout
// @Tags         auth
// @Produce      plain
// @Success      200  {string}  string  "Logged out successfully."
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, _ := ctxSession(c)
	if err := h.authService.Logout(c.Request().Context(), sessionID); err != nil {
		return err
	}

	c.SetCookie(h.expiredCookie())
	return c.String(http.StatusOK, msgLoggedOut)
}

// CheckSession reports whether the caller is logged in.
//
// @Summary      Check session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /check-session [get]
func (h *AuthHandler) CheckSession(c echo.Context) error {
	_, username := ctxSession(c)
	if username == "" {
		return c.JSON(http.StatusOK, sessionResponse{LoggedIn: false})
	}
	return c.JSON(http.StatusOK, sessionResponse{LoggedIn: true, Username: username})
}

func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
