package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/milangdev/moviefi-test-task/auth"
	"github.com/milangdev/moviefi-test-task/user"

	"github.com/labstack/echo/v4"
)

const (
	// tokenCookieName is the cookie the page guard and the private API group
	// both look at.
	tokenCookieName = "token"

	oauthStateCookieName = "oauth_state"

	defaultTokenTTLSeconds = 3600
)

func (s *Server) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", s.Signup)
	g.POST("/login", s.Login)
	g.POST("/refresh", s.Refresh)
	g.GET("/logout", s.Logout)
	g.GET("/auth/google", s.GoogleLogin)
	g.GET("/auth/google/callback", s.GoogleCallback)
}

func (s *Server) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", "", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyExists):
			return writeError(c, http.StatusConflict, "Email already registered", "", err)
		case errors.Is(err, user.ErrInvalidName),
			errors.Is(err, user.ErrInvalidEmail),
			errors.Is(err, user.ErrInvalidPassword):
			return writeError(c, http.StatusBadRequest, err.Error(), "", err)
		}
		return err
	}

	s.setTokenCookie(c, tokens.AccessToken)
	return writeSuccess(c, http.StatusCreated, echo.Map{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", "", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return writeError(c, http.StatusUnauthorized, "Invalid email or password", "", err)
		case errors.Is(err, auth.ErrAccountLocked):
			return writeError(c, http.StatusTooManyRequests, "Too many failed attempts, try again later", "", err)
		}
		return err
	}

	s.setTokenCookie(c, tokens.AccessToken)
	return writeSuccess(c, http.StatusOK, echo.Map{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func (s *Server) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", "", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			return writeError(c, http.StatusUnauthorized, "Invalid refresh token", "", err)
		}
		return err
	}

	s.setTokenCookie(c, tokens.AccessToken)
	return writeSuccess(c, http.StatusOK, echo.Map{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// Logout clears the token cookie. It always reports success, even when no
// session cookie was present.
func (s *Server) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return writeSuccess(c, http.StatusOK, nil)
}

func (s *Server) GoogleLogin(c echo.Context) error {
	state, err := randomState()
	if err != nil {
		return err
	}

	url, err := s.AuthService.GoogleAuthURL(state)
	if err != nil {
		if errors.Is(err, auth.ErrOAuthNotConfigured) {
			return writeError(c, http.StatusNotImplemented, "Google login is not configured", "", err)
		}
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, url)
}

func (s *Server) GoogleCallback(c echo.Context) error {
	stateCookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != c.QueryParam("state") {
		return writeError(c, http.StatusBadRequest, "Invalid oauth state", "", err)
	}

	tokens, err := s.AuthService.LoginWithGoogle(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrOAuthNotConfigured):
			return writeError(c, http.StatusNotImplemented, "Google login is not configured", "", err)
		case errors.Is(err, auth.ErrInvalidOAuthUser):
			return writeError(c, http.StatusBadRequest, "Google account could not be verified", "", err)
		}
		return err
	}

	s.setTokenCookie(c, tokens.AccessToken)
	return c.Redirect(http.StatusFound, "/")
}

func (s *Server) setTokenCookie(c echo.Context, token string) {
	ttl := defaultTokenTTLSeconds
	if s.Config != nil && s.Config.Auth.TokenTTL > 0 {
		ttl = s.Config.Auth.TokenTTL
	}

	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   ttl,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func randomState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
