package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/milangdev/moviefi-test-task/auth"
	"github.com/milangdev/moviefi-test-task/dynamodb"
	"github.com/milangdev/moviefi-test-task/httpserver"
	"github.com/milangdev/moviefi-test-task/movie"
	"github.com/milangdev/moviefi-test-task/pkg/config"
	"github.com/milangdev/moviefi-test-task/pkg/jwt"
	"github.com/milangdev/moviefi-test-task/pkg/oauth/google"
	"github.com/milangdev/moviefi-test-task/pkg/password"
	"github.com/milangdev/moviefi-test-task/pkg/sentry"
	"github.com/milangdev/moviefi-test-task/postgres"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if cfg.SentryDSN != "" {
		if err := sentrygo.Init(sentrygo.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentrygo.Flush(sentry.FlushTime)
	}

	movieRepo, userRepo, attemptRepo, err := buildRepositories(cfg)
	if err != nil {
		return err
	}

	tokenTTL := time.Duration(cfg.Auth.TokenTTL) * time.Second
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	refreshTTL := time.Duration(cfg.Auth.RefreshTTL) * time.Second
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	tokenProvider := jwt.NewJWTProvider(cfg.Auth.JWTSecret, tokenTTL, refreshTTL)
	googleProvider := google.NewProvider(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURL)

	authService := auth.NewUsecase(userRepo, attemptRepo, password.NewBcryptHasher(), tokenProvider, googleOrNil(googleProvider))
	movieService := movie.NewUsecase(movieRepo)

	server := httpserver.Default(cfg)
	server.MovieService = movieService
	server.AuthService = authService

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr, "db_driver", cfg.DB.Driver)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}

// buildRepositories picks the storage backend from DB_DRIVER. Postgres is the
// default; dynamodb covers deployments without a relational database.
func buildRepositories(cfg *config.Config) (movie.Repository, auth.UserRepository, auth.LoginAttemptRepository, error) {
	switch strings.ToLower(cfg.DB.Driver) {
	case "", "postgres":
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return postgres.NewMovieRepository(db),
			postgres.NewUserRepository(db),
			postgres.NewLoginAttemptRepository(db),
			nil

	case "dynamodb":
		client, err := dynamodb.NewClient(context.Background(), dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect dynamodb: %w", err)
		}
		return dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable),
			dynamodb.NewUserRepository(client, cfg.DynamoDB.UsersTable),
			dynamodb.NewLoginAttemptRepository(client, cfg.DynamoDB.LoginAttemptsTable),
			nil
	}

	return nil, nil, nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
}

// googleOrNil keeps a typed nil *google.Provider from sneaking into the
// GoogleOAuthProvider interface value.
func googleOrNil(p *google.Provider) auth.GoogleOAuthProvider {
	if p == nil {
		return nil
	}
	return p
}
