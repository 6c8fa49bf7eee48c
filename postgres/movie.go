package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/milangdev/moviefi-test-task/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID             string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title          string    `gorm:"not null"`
	PublishingYear int       `gorm:"column:publishing_year;not null"`
	Poster         string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// List returns one page of movies, newest first, plus the total count the
// pagination metadata is derived from.
func (r *MovieRepository) List(ctx context.Context, offset, limit int) ([]movie.Movie, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&MovieModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []MovieModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, total, nil
}

// GetByID fetches a movie by id.
func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	var model MovieModel

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, err
	}

	return toDomainMovie(model), nil
}

// Create inserts a new movie and returns it with the generated id.
func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := toModelMovie(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// Update overwrites the editable fields of an existing movie.
func (r *MovieRepository) Update(ctx context.Context, id string, m movie.Movie) (movie.Movie, error) {
	result := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":           m.Title,
		"publishing_year": m.PublishingYear,
		"poster":          m.Poster,
		"updated_at":      time.Now().UTC(),
	})
	if result.Error != nil {
		return movie.Movie{}, result.Error
	}
	if result.RowsAffected == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}
	return r.GetByID(ctx, id)
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:             model.ID,
		Title:          model.Title,
		PublishingYear: model.PublishingYear,
		Poster:         model.Poster,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	return MovieModel{
		ID:             m.ID,
		Title:          m.Title,
		PublishingYear: m.PublishingYear,
		Poster:         m.Poster,
	}
}
