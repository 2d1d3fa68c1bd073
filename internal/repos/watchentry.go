package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type WatchEntryRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchEntry, bool, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WatchEntry, error)
	GetByUserIDInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.WatchEntry, error)
	FullDeleteByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) error
	FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type watchEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWatchEntryRepo(db *gorm.DB, baseLog *logger.Logger) WatchEntryRepo {
	repoLog := baseLog.With("repo", "WatchEntryRepo")
	return &watchEntryRepo{db: db, log: repoLog}
}

func (r *watchEntryRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchEntry, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var existing types.WatchEntry
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	entry := &types.WatchEntry{ID: uuid.New(), UserID: userID, MovieID: movieID, WatchedAt: time.Now().UTC()}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (r *watchEntryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WatchEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.WatchEntry
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("watched_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *watchEntryRepo) GetByUserIDInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.WatchEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.WatchEntry
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ? AND watched_at >= ? AND watched_at < ?", userID, from, to).
		Order("watched_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *watchEntryRepo) FullDeleteByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&types.WatchEntry{}).Error
}

func (r *watchEntryRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
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
		Delete(&types.WatchEntry{}).Error
}
