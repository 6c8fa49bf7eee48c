package httpserver

import "github.com/milangdev/moviefi-test-task/movie"

type AddMovieRequest struct {
	Title          string `json:"title" validate:"required,max=255"`
	PublishingYear int    `json:"publishingYear" validate:"required,gte=1888"`
	Poster         string `json:"poster" validate:"required,max=2048"`
}

func (r AddMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title:          r.Title,
		PublishingYear: r.PublishingYear,
		Poster:         r.Poster,
	}
}

type UpdateMovieRequest struct {
	Title          string `json:"title" validate:"required,max=255"`
	PublishingYear int    `json:"publishingYear" validate:"required,gte=1888"`
	Poster         string `json:"poster" validate:"required,max=2048"`
}

func (r UpdateMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Title:          r.Title,
		PublishingYear: r.PublishingYear,
		Poster:         r.Poster,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
