package movie

import "context"

const (
	DefaultPageSize = 8
	MaxPageSize     = 100
)

type Service interface {
	List(ctx context.Context, page, limit int) ([]Movie, Pagination, error)
	Get(ctx context.Context, id string) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, id string, m Movie) (Movie, error)
}

type Repository interface {
	List(ctx context.Context, offset, limit int) ([]Movie, int64, error)
	GetByID(ctx context.Context, id string) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, id string, m Movie) (Movie, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// List fetches one page of the catalog. Out-of-range input is normalized
// rather than rejected: a missing or bad page becomes page 1, limit is
// clamped to [1, MaxPageSize]. A page past the end yields an empty list with
// correct metadata, which is what infinite-scroll clients key off of.
func (uc *Usecase) List(ctx context.Context, page, limit int) ([]Movie, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	movies, total, err := uc.r.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return movies, Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalMovies: total,
	}, nil
}

func (uc *Usecase) Get(ctx context.Context, id string) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) Create(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.Create(ctx, m)
}

func (uc *Usecase) Update(ctx context.Context, id string, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	return uc.r.Update(ctx, id, m)
}
