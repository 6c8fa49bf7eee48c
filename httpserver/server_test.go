package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/milangdev/moviefi-test-task/errs"
	"github.com/milangdev/moviefi-test-task/httpserver"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	server := httpserver.Default(testConfig())

	require.NotNil(t, server.Router)
	assert.Equal(t, ":8080", server.Addr)
	assert.Equal(t, []string{"*"}, server.AllowOrigins)
	assert.NotNil(t, server.Router.Validator)
}

func TestSecurityHeaders(t *testing.T) {
	server := httpserver.Default(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestCORS(t *testing.T) {
	server := httpserver.Default(testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/movies", nil)
	req.Header.Set(echo.HeaderOrigin, "https://example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestPanicRecovery(t *testing.T) {
	server := httpserver.Default(testConfig())
	server.Router.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		server.Router.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCustomErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "invalid maps to 400",
			err:         &errs.Error{Code: errs.EINVALID, Message: "publishing year is out of range"},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "100010",
			wantMessage: "publishing year is out of range",
		},
		{
			name:        "not found maps to 404",
			err:         &errs.Error{Code: errs.ENOTFOUND, Message: "movie does not exist"},
			wantStatus:  http.StatusNotFound,
			wantCode:    "100404",
			wantMessage: "movie does not exist",
		},
		{
			name:        "conflict maps to 409",
			err:         &errs.Error{Code: errs.ECONFLICT, Message: "email already registered"},
			wantStatus:  http.StatusConflict,
			wantCode:    "100409",
			wantMessage: "email already registered",
		},
		{
			name:        "unauthorized maps to 401",
			err:         &errs.Error{Code: errs.EUNAUTHORIZED, Message: "session expired"},
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "100401",
			wantMessage: "session expired",
		},
		{
			name:        "not implemented maps to 501",
			err:         &errs.Error{Code: errs.ENOTIMPLEMENTED, Message: "not available yet"},
			wantStatus:  http.StatusNotImplemented,
			wantCode:    "100501",
			wantMessage: "not available yet",
		},
		{
			name:        "internal details are hidden",
			err:         &errs.Error{Code: errs.EINTERNAL, Message: "pq: connection refused"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "100500",
			wantMessage: "Internal server error",
		},
		{
			name:        "unknown errors are treated as internal",
			err:         assert.AnError,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "100500",
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httpserver.Default(testConfig())
			server.Router.GET("/fail", func(c echo.Context) error {
				return tt.err
			})

			req := httptest.NewRequest(http.MethodGet, "/fail", nil)
			rec := httptest.NewRecorder()
			server.Router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeAPIResponse(t, rec.Body.Bytes())
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}
