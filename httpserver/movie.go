package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/milangdev/moviefi-test-task/movie"
	"github.com/milangdev/moviefi-test-task/viewport"

	"github.com/labstack/echo/v4"
)

// smallViewportPageSize is the default page size sent to phones, so one
// request fills a single-column grid.
const smallViewportPageSize = 4

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.ListMovies)
	g.GET("/movies/:id", s.GetMovie)
}

func (s *Server) RegisterPrivateMovieRoutes(g *echo.Group) {
	g.POST("/movies", s.CreateMovie)
	g.PUT("/movies/:id", s.UpdateMovie)
}

// ListMovies handles GET /api/movies. Clients pass page and limit; when limit
// is absent they may pass the viewport width instead and let the server pick
// a page size that fits the layout.
func (s *Server) ListMovies(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	if limit <= 0 {
		if width, err := strconv.Atoi(c.QueryParam("width")); err == nil {
			if viewport.Classify(width).IsSmall {
				limit = smallViewportPageSize
			} else {
				limit = movie.DefaultPageSize
			}
		}
	}

	movies, pagination, err := s.MovieService.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	if movies == nil {
		movies = []movie.Movie{}
	}

	return writeSuccess(c, http.StatusOK, echo.Map{
		"movies":     movies,
		"pagination": pagination,
	})
}

func (s *Server) GetMovie(c echo.Context) error {
	m, err := s.MovieService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, movie.ErrMovieNotFound) {
			return writeError(c, http.StatusNotFound, "Movie not found", "", err)
		}
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

func (s *Server) CreateMovie(c echo.Context) error {
	var req AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", "", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.Create(c.Request().Context(), req.ToMovie())
	if err != nil {
		if movieInputError(err) {
			return writeError(c, http.StatusBadRequest, err.Error(), "", err)
		}
		return err
	}

	return writeSuccess(c, http.StatusCreated, m)
}

func (s *Server) UpdateMovie(c echo.Context) error {
	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body", "", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := s.MovieService.Update(c.Request().Context(), c.Param("id"), req.ToMovie())
	if err != nil {
		switch {
		case errors.Is(err, movie.ErrMovieNotFound):
			return writeError(c, http.StatusNotFound, "Movie not found", "", err)
		case movieInputError(err):
			return writeError(c, http.StatusBadRequest, err.Error(), "", err)
		}
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

func movieInputError(err error) bool {
	return errors.Is(err, movie.ErrInvalidTitle) ||
		errors.Is(err, movie.ErrInvalidPublishingYear) ||
		errors.Is(err, movie.ErrInvalidPoster)
}
