package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/milangdev/moviefi-test-task/auth"
	"github.com/milangdev/moviefi-test-task/httpserver"
	"github.com/milangdev/moviefi-test-task/movie"
	"github.com/milangdev/moviefi-test-task/pkg/config"

	jwtgo "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func testConfig() *config.Config {
	cfg := new(config.Config)
	cfg.AppEnv = "test"
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Auth.TokenTTL = 900
	return cfg
}

// signTestToken mints a token the private API group accepts.
func signTestToken(t *testing.T) string {
	t.Helper()

	claims := jwtgo.MapClaims{
		"user_id": "u-1",
		"email":   "tester@example.com",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func tokenCookie(value string) *http.Cookie {
	return &http.Cookie{Name: "token", Value: value}
}

func decodeAPIResponse(t *testing.T, body []byte) httpserver.APIResponse {
	t.Helper()

	var resp httpserver.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// decodeAPIResult unmarshals the envelope's result field into out.
func decodeAPIResult(t *testing.T, body []byte, out interface{}) httpserver.APIResponse {
	t.Helper()

	resp := decodeAPIResponse(t, body)
	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
	return resp
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) List(ctx context.Context, page, limit int) ([]movie.Movie, movie.Pagination, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]movie.Movie), args.Get(1).(movie.Pagination), args.Error(2)
}

func (m *MockMovieService) Get(ctx context.Context, id string) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, id string, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, id, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (auth.TokenPair, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (auth.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}

func (m *MockAuthService) GoogleAuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) LoginWithGoogle(ctx context.Context, code string) (auth.TokenPair, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(auth.TokenPair), args.Error(1)
}
