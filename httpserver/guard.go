package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RouteGuard gates the HTML pages on the presence of the token cookie.
// Authenticated visitors are bounced away from the login and signup pages,
// everyone else is bounced from the catalog pages to /login. The guard only
// checks presence; the private API group verifies the token itself.
func RouteGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		loggedIn := hasTokenCookie(c)

		switch c.Path() {
		case "/login", "/signup":
			if loggedIn {
				return c.Redirect(http.StatusFound, "/")
			}
		default:
			if !loggedIn {
				return c.Redirect(http.StatusFound, "/login")
			}
		}

		return next(c)
	}
}

func hasTokenCookie(c echo.Context) bool {
	cookie, err := c.Cookie(tokenCookieName)
	return err == nil && cookie.Value != ""
}
