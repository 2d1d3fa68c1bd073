package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/repos"
	"github.com/yungbote/scrapbook-backend/internal/requestdata"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

// WatchlistService manages both user lists: "watch later" intentions and the
// watched-movies log.
type WatchlistService interface {
	ListWatchLater(ctx context.Context) ([]*types.WatchLater, error)
	AddWatchLater(ctx context.Context, movieID string) (*types.WatchLater, bool, error)
	RemoveWatchLater(ctx context.Context, movieID string) error

	ListWatched(ctx context.Context) ([]*types.WatchEntry, error)
	AddWatched(ctx context.Context, movieID string) (*types.WatchEntry, bool, error)
	RemoveWatched(ctx context.Context, movieID string) error
}

type watchlistService struct {
	db             *gorm.DB
	log            *logger.Logger
	movieRepo      repos.MovieRepo
	watchLaterRepo repos.WatchLaterRepo
	watchEntryRepo repos.WatchEntryRepo
}

func NewWatchlistService(
	db *gorm.DB,
	log *logger.Logger,
	movieRepo repos.MovieRepo,
	watchLaterRepo repos.WatchLaterRepo,
	watchEntryRepo repos.WatchEntryRepo,
) WatchlistService {
	serviceLog := log.With("service", "WatchlistService")
	return &watchlistService{
		db:             db,
		log:            serviceLog,
		movieRepo:      movieRepo,
		watchLaterRepo: watchLaterRepo,
		watchEntryRepo: watchEntryRepo,
	}
}

func (ws *watchlistService) ListWatchLater(ctx context.Context) ([]*types.WatchLater, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("Not authenticated")
	}
	entries, err := ws.watchLaterRepo.GetByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("Error listing watch later entries: %w", err)
	}
	return entries, nil
}

func (ws *watchlistService) AddWatchLater(ctx context.Context, movieID string) (*types.WatchLater, bool, error) {
	rd, err := ws.requireUserAndMovie(ctx, movieID)
	if err != nil {
		return nil, false, err
	}
	entry, created, gErr := ws.watchLaterRepo.GetOrCreate(ctx, nil, rd.UserID, movieID)
	if gErr != nil {
		return nil, false, fmt.Errorf("Failed to add watch later entry: %w", gErr)
	}
	return entry, created, nil
}

func (ws *watchlistService) RemoveWatchLater(ctx context.Context, movieID string) error {
	rd, err := ws.requireUserAndMovie(ctx, movieID)
	if err != nil {
		return err
	}
	if _, gErr := ws.watchLaterRepo.GetByUserAndMovieID(ctx, nil, rd.UserID, movieID); gErr != nil {
		return gErr
	}
	return ws.watchLaterRepo.FullDeleteByUserAndMovieID(ctx, nil, rd.UserID, movieID)
}

func (ws *watchlistService) ListWatched(ctx context.Context) ([]*types.WatchEntry, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("Not authenticated")
	}
	entries, err := ws.watchEntryRepo.GetByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("Error listing watched entries: %w", err)
	}
	return entries, nil
}

func (ws *watchlistService) AddWatched(ctx context.Context, movieID string) (*types.WatchEntry, bool, error) {
	rd, err := ws.requireUserAndMovie(ctx, movieID)
	if err != nil {
		return nil, false, err
	}
	entry, created, gErr := ws.watchEntryRepo.GetOrCreate(ctx, nil, rd.UserID, movieID)
	if gErr != nil {
		return nil, false, fmt.Errorf("Failed to add watched entry: %w", gErr)
	}
	return entry, created, nil
}

func (ws *watchlistService) RemoveWatched(ctx context.Context, movieID string) error {
	rd, err := ws.requireUserAndMovie(ctx, movieID)
	if err != nil {
		return err
	}
	return ws.watchEntryRepo.FullDeleteByUserAndMovieID(ctx, nil, rd.UserID, movieID)
}

func (ws *watchlistService) requireUserAndMovie(ctx context.Context, movieID string) (*requestdata.RequestData, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("Not authenticated")
	}
	exists, eErr := ws.movieRepo.Exists(ctx, nil, movieID)
	if eErr != nil {
		return nil, fmt.Errorf("Error checking movie: %w", eErr)
	}
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return rd, nil
}
