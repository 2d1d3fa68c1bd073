package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Review, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Review, error)
	GetByMovieID(ctx context.Context, tx *gorm.DB, movieID string) ([]*types.Review, error)
	GetByUserAndMovieIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieIDs []string) ([]*types.Review, error)
	GetByUserIDInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Review, error)
	Update(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) error
	FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (r *reviewRepo) Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(reviews) == 0 {
		return []*types.Review{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepo) GetByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if len(reviewIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Movie").
		Where("id IN ?", reviewIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) GetByMovieID(ctx context.Context, tx *gorm.DB, movieID string) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if movieID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByUserAndMovieIDs is the bulk lookup the report builders index by movie
// id, so per-movie review probes never happen inside an aggregation loop.
func (r *reviewRepo) GetByUserAndMovieIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieIDs []string) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if userID == uuid.Nil || len(movieIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND movie_id IN ?", userID, movieIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) GetByUserIDInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) Update(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if review == nil || review.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	if err := transaction.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *reviewRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(reviewIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", reviewIDs).
		Delete(&types.Review{}).Error
}

func (r *reviewRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(userIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("user_id IN ?", userIDs).
		Delete(&types.Review{}).Error
}
