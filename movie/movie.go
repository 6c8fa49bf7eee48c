package movie

import (
	"strings"
	"time"

	"github.com/milangdev/moviefi-test-task/errs"
)

// The first film screenings date back to 1888; anything earlier is a typo.
const MinPublishingYear = 1888

var (
	ErrMovieNotFound         = errs.Errorf(errs.ENOTFOUND, "movie not found")
	ErrInvalidTitle          = errs.Errorf(errs.EINVALID, "movie: title is required")
	ErrInvalidPublishingYear = errs.Errorf(errs.EINVALID, "movie: publishing year is out of range")
	ErrInvalidPoster         = errs.Errorf(errs.EINVALID, "movie: poster is required")
	ErrInvalidPage           = errs.Errorf(errs.EINVALID, "movie: invalid page")
)

type Movie struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	PublishingYear int    `json:"publishingYear"`
	Poster         string `json:"poster"`
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}

	// Next year's releases are announced with posters before they ship.
	if m.PublishingYear < MinPublishingYear || m.PublishingYear > time.Now().Year()+1 {
		return ErrInvalidPublishingYear
	}

	if strings.TrimSpace(m.Poster) == "" {
		return ErrInvalidPoster
	}

	return nil
}

// Pagination describes the position of a page within the catalog.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalMovies int64 `json:"totalMovies"`
}

// HasMore reports whether another page can be fetched after the current one.
// Infinite-scroll clients use it to decide whether to keep observing.
func (p Pagination) HasMore() bool {
	return p.CurrentPage < p.TotalPages
}
