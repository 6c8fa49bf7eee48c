package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/milangdev/moviefi-test-task/httpserver"
	"github.com/milangdev/moviefi-test-task/movie"

	"github.com/labstack/echo/v4"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type moviePageResult struct {
	Movies     []movie.Movie    `json:"movies"`
	Pagination movie.Pagination `json:"pagination"`
}

func TestListMovies(t *testing.T) {
	t.Run("returns one page with pagination metadata", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		movies := []movie.Movie{
			{ID: "m-1", Title: "Heat", PublishingYear: 1995, Poster: "https://img/heat.jpg"},
			{ID: "m-2", Title: "Ronin", PublishingYear: 1998, Poster: "https://img/ronin.jpg"},
		}
		mockSvc.On("List", mock.Anything, 2, 8).
			Return(movies, movie.Pagination{CurrentPage: 2, TotalPages: 3, TotalMovies: 20}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/movies?page=2&limit=8", nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result moviePageResult
		resp := decodeAPIResult(t, rec.Body.Bytes(), &result)
		assert.Equal(t, "200", resp.Code)
		assert.Equal(t, "OK", resp.Message)
		assert.Len(t, result.Movies, 2)
		assert.Equal(t, "Heat", result.Movies[0].Title)
		assert.Equal(t, 2, result.Pagination.CurrentPage)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.Equal(t, int64(20), result.Pagination.TotalMovies)
		mockSvc.AssertExpectations(t)
	})

	t.Run("small viewport width picks the phone page size", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		mockSvc.On("List", mock.Anything, 1, 4).
			Return([]movie.Movie{}, movie.Pagination{CurrentPage: 1}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/movies?page=1&width=390", nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("desktop width falls back to the default page size", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		mockSvc.On("List", mock.Anything, 1, movie.DefaultPageSize).
			Return([]movie.Movie{}, movie.Pagination{CurrentPage: 1}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/movies?page=1&width=1440", nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("explicit limit wins over width", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		mockSvc.On("List", mock.Anything, 1, 12).
			Return([]movie.Movie{}, movie.Pagination{CurrentPage: 1}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/movies?page=1&limit=12&width=390", nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty catalog serializes as an empty array", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		mockSvc.On("List", mock.Anything, 1, 0).
			Return([]movie.Movie(nil), movie.Pagination{CurrentPage: 1}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"movies":[]`)
	})

	t.Run("repository failure maps to 500 with a generic message", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		mockSvc.On("List", mock.Anything, 1, 0).
			Return([]movie.Movie(nil), movie.Pagination{}, assert.AnError)

		req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeAPIResponse(t, rec.Body.Bytes())
		assert.Equal(t, "100500", resp.Code)
		assert.Equal(t, "Internal server error", resp.Message)
	})
}

func TestGetMovie(t *testing.T) {
	t.Run("returns the movie", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		mockSvc.On("Get", mock.Anything, "m-1").
			Return(movie.Movie{ID: "m-1", Title: "Heat", PublishingYear: 1995, Poster: "https://img/heat.jpg"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/movies/m-1", nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got movie.Movie
		decodeAPIResult(t, rec.Body.Bytes(), &got)
		assert.Equal(t, "Heat", got.Title)
		assert.Equal(t, 1995, got.PublishingYear)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		mockSvc.On("Get", mock.Anything, "missing").
			Return(movie.Movie{}, movie.ErrMovieNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/movies/missing", nil)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeAPIResponse(t, rec.Body.Bytes())
		assert.Equal(t, "100404", resp.Code)
	})
}

func TestCreateMovie(t *testing.T) {
	t.Run("creates a movie with a valid token cookie", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		in := movie.Movie{Title: "Heat", PublishingYear: 1995, Poster: "https://img/heat.jpg"}
		mockSvc.On("Create", mock.Anything, in).
			Return(movie.Movie{ID: "m-1", Title: "Heat", PublishingYear: 1995, Poster: "https://img/heat.jpg"}, nil)

		body := `{"title":"Heat","publishingYear":1995,"poster":"https://img/heat.jpg"}`
		req := httptest.NewRequest(http.MethodPost, "/api/movies", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(tokenCookie(signTestToken(t)))
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got movie.Movie
		decodeAPIResult(t, rec.Body.Bytes(), &got)
		assert.Equal(t, "m-1", got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("rejects the request without a token", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		body := `{"title":"Heat","publishingYear":1995,"poster":"https://img/heat.jpg"}`
		req := httptest.NewRequest(http.MethodPost, "/api/movies", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing title", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		body := `{"publishingYear":1995,"poster":"https://img/heat.jpg"}`
		req := httptest.NewRequest(http.MethodPost, "/api/movies", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(tokenCookie(signTestToken(t)))
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeAPIResponse(t, rec.Body.Bytes())
		assert.Equal(t, "100010", resp.Code)
		mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		req := httptest.NewRequest(http.MethodPost, "/api/movies", strings.NewReader(`{"title":`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(tokenCookie(signTestToken(t)))
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateMovie(t *testing.T) {
	t.Run("updates an existing movie", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		in := movie.Movie{Title: "Heat", PublishingYear: 1996, Poster: "https://img/heat-v2.jpg"}
		mockSvc.On("Update", mock.Anything, "m-1", in).
			Return(movie.Movie{ID: "m-1", Title: "Heat", PublishingYear: 1996, Poster: "https://img/heat-v2.jpg"}, nil)

		body := `{"title":"Heat","publishingYear":1996,"poster":"https://img/heat-v2.jpg"}`
		req := httptest.NewRequest(http.MethodPut, "/api/movies/m-1", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(tokenCookie(signTestToken(t)))
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got movie.Movie
		decodeAPIResult(t, rec.Body.Bytes(), &got)
		assert.Equal(t, 1996, got.PublishingYear)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		server := httpserver.Default(testConfig())
		mockSvc := new(MockMovieService)
		server.MovieService = mockSvc

		mockSvc.On("Update", mock.Anything, "missing", mock.Anything).
			Return(movie.Movie{}, movie.ErrMovieNotFound)

		body := `{"title":"Heat","publishingYear":1996,"poster":"https://img/heat.jpg"}`
		req := httptest.NewRequest(http.MethodPut, "/api/movies/missing", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(tokenCookie(signTestToken(t)))
		rec := httptest.NewRecorder()
		server.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
