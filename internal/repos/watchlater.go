package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type WatchLaterRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchLater, bool, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WatchLater, error)
	GetByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchLater, error)
	FullDeleteByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) error
	FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type watchLaterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWatchLaterRepo(db *gorm.DB, baseLog *logger.Logger) WatchLaterRepo {
	repoLog := baseLog.With("repo", "WatchLaterRepo")
	return &watchLaterRepo{db: db, log: repoLog}
}

// GetOrCreate reports whether a new row was created; adding a movie twice is
// not an error, it returns the existing row.
func (r *watchLaterRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchLater, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var existing types.WatchLater
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	entry := &types.WatchLater{ID: uuid.New(), UserID: userID, MovieID: movieID}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (r *watchLaterRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WatchLater, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.WatchLater
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *watchLaterRepo) GetByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchLater, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.WatchLater
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *watchLaterRepo) FullDeleteByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&types.WatchLater{}).Error
}

func (r *watchLaterRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
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
		Delete(&types.WatchLater{}).Error
}
