package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type MovieRepo interface {
	Create(ctx context.Context, tx *gorm.DB, movies []*types.Movie) ([]*types.Movie, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Movie, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, movieIDs []string) ([]*types.Movie, error)
	Exists(ctx context.Context, tx *gorm.DB, movieID string) (bool, error)
}

type movieRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMovieRepo(db *gorm.DB, baseLog *logger.Logger) MovieRepo {
	repoLog := baseLog.With("repo", "MovieRepo")
	return &movieRepo{db: db, log: repoLog}
}

func (r *movieRepo) Create(ctx context.Context, tx *gorm.DB, movies []*types.Movie) ([]*types.Movie, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(movies) == 0 {
		return []*types.Movie{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Movie, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Movie
	if err := transaction.WithContext(ctx).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *movieRepo) GetByIDs(ctx context.Context, tx *gorm.DB, movieIDs []string) ([]*types.Movie, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Movie
	if len(movieIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", movieIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *movieRepo) Exists(ctx context.Context, tx *gorm.DB, movieID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Movie{}).
		Where("id = ?", movieID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
