package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// The pages are server-rendered shells; the catalog itself is loaded from
// /api/movies by the embedded script.
const (
	moviesPageHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>My movies</title></head>
<body data-page="movies"><div id="app"></div><script src="/static/app.js"></script></body>
</html>`

	loginPageHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Sign in</title></head>
<body data-page="login"><div id="app"></div><script src="/static/app.js"></script></body>
</html>`

	signupPageHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Sign up</title></head>
<body data-page="signup"><div id="app"></div><script src="/static/app.js"></script></body>
</html>`

	addMoviePageHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Create a new movie</title></head>
<body data-page="add-movie"><div id="app"></div><script src="/static/app.js"></script></body>
</html>`

	editMoviePageHTML = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>Edit movie</title></head>
<body data-page="edit-movie"><div id="app"></div><script src="/static/app.js"></script></body>
</html>`
)

func (s *Server) RegisterPageRoutes() {
	pages := s.Router.Group("", RouteGuard)

	pages.GET("/", s.MoviesPage)
	pages.GET("/login", s.LoginPage)
	pages.GET("/signup", s.SignupPage)
	pages.GET("/add", s.AddMoviePage)
	pages.GET("/edit/:id", s.EditMoviePage)
}

func (s *Server) MoviesPage(c echo.Context) error {
	return c.HTML(http.StatusOK, moviesPageHTML)
}

func (s *Server) LoginPage(c echo.Context) error {
	return c.HTML(http.StatusOK, loginPageHTML)
}

func (s *Server) SignupPage(c echo.Context) error {
	return c.HTML(http.StatusOK, signupPageHTML)
}

func (s *Server) AddMoviePage(c echo.Context) error {
	return c.HTML(http.StatusOK, addMoviePageHTML)
}

func (s *Server) EditMoviePage(c echo.Context) error {
	return c.HTML(http.StatusOK, editMoviePageHTML)
}
