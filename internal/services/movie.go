package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/repos"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type MovieService interface {
	ListMovies(ctx context.Context) ([]*types.Movie, error)
	GetMovie(ctx context.Context, movieID string) (*types.Movie, error)
	AddMovie(ctx context.Context, movie *types.Movie) (*types.Movie, error)
}

type movieService struct {
	db        *gorm.DB
	log       *logger.Logger
	movieRepo repos.MovieRepo
}

func NewMovieService(db *gorm.DB, log *logger.Logger, movieRepo repos.MovieRepo) MovieService {
	serviceLog := log.With("service", "MovieService")
	return &movieService{db: db, log: serviceLog, movieRepo: movieRepo}
}

func (ms *movieService) ListMovies(ctx context.Context) ([]*types.Movie, error) {
	movies, err := ms.movieRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Error listing movies: %w", err)
	}
	return movies, nil
}

func (ms *movieService) GetMovie(ctx context.Context, movieID string) (*types.Movie, error) {
	if movieID == "" {
		return nil, fmt.Errorf("Movie id is required")
	}
	movies, err := ms.movieRepo.GetByIDs(ctx, nil, []string{movieID})
	if err != nil {
		return nil, fmt.Errorf("Error fetching movie: %w", err)
	}
	if len(movies) == 0 || movies[0] == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return movies[0], nil
}

func (ms *movieService) AddMovie(ctx context.Context, movie *types.Movie) (*types.Movie, error) {
	if movie == nil || movie.ID == "" {
		return nil, fmt.Errorf("A movie with an id is required")
	}
	if movie.Title == "" {
		return nil, fmt.Errorf("A movie title is required")
	}
	exists, eErr := ms.movieRepo.Exists(ctx, nil, movie.ID)
	if eErr != nil {
		return nil, fmt.Errorf("Error checking movie: %w", eErr)
	}
	if exists {
		return nil, fmt.Errorf("Movie already exists")
	}
	created, cErr := ms.movieRepo.Create(ctx, nil, []*types.Movie{movie})
	if cErr != nil {
		return nil, fmt.Errorf("Failed to create movie: %w", cErr)
	}
	return created[0], nil
}
