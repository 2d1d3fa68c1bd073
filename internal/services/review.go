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

type ReviewUpdate struct {
	Rating     *float64
	ReviewText *string
}

type ReviewService interface {
	ListMovieReviews(ctx context.Context, movieID string) ([]*types.Review, error)
	ListUserReviews(ctx context.Context) ([]*types.Review, error)
	CreateReview(ctx context.Context, movieID string, rating float64, reviewText string) (*types.Review, error)
	UpdateReview(ctx context.Context, reviewID uuid.UUID, update ReviewUpdate) (*types.Review, error)
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error
}

type reviewService struct {
	db         *gorm.DB
	log        *logger.Logger
	movieRepo  repos.MovieRepo
	reviewRepo repos.ReviewRepo
}

func NewReviewService(db *gorm.DB, log *logger.Logger, movieRepo repos.MovieRepo, reviewRepo repos.ReviewRepo) ReviewService {
	serviceLog := log.With("service", "ReviewService")
	return &reviewService{db: db, log: serviceLog, movieRepo: movieRepo, reviewRepo: reviewRepo}
}

func (rs *reviewService) ListMovieReviews(ctx context.Context, movieID string) ([]*types.Review, error) {
	exists, eErr := rs.movieRepo.Exists(ctx, nil, movieID)
	if eErr != nil {
		return nil, fmt.Errorf("Error checking movie: %w", eErr)
	}
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	reviews, err := rs.reviewRepo.GetByMovieID(ctx, nil, movieID)
	if err != nil {
		return nil, fmt.Errorf("Error listing movie reviews: %w", err)
	}
	return reviews, nil
}

func (rs *reviewService) ListUserReviews(ctx context.Context) ([]*types.Review, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("Not authenticated")
	}
	reviews, err := rs.reviewRepo.GetByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("Error listing user reviews: %w", err)
	}
	return reviews, nil
}

func (rs *reviewService) CreateReview(ctx context.Context, movieID string, rating float64, reviewText string) (*types.Review, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("Not authenticated")
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("Rating must be between 1 and 5")
	}
	exists, eErr := rs.movieRepo.Exists(ctx, nil, movieID)
	if eErr != nil {
		return nil, fmt.Errorf("Error checking movie: %w", eErr)
	}
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}

	// One review per user+movie pair.
	existing, exErr := rs.reviewRepo.GetByUserAndMovieIDs(ctx, nil, rd.UserID, []string{movieID})
	if exErr != nil {
		return nil, fmt.Errorf("Error checking existing review: %w", exErr)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("Movie is already reviewed by this user")
	}

	review := &types.Review{
		ID:         uuid.New(),
		UserID:     rd.UserID,
		MovieID:    movieID,
		Rating:     rating,
		ReviewText: reviewText,
	}
	created, cErr := rs.reviewRepo.Create(ctx, nil, []*types.Review{review})
	if cErr != nil {
		return nil, fmt.Errorf("Failed to create review: %w", cErr)
	}
	return created[0], nil
}

func (rs *reviewService) UpdateReview(ctx context.Context, reviewID uuid.UUID, update ReviewUpdate) (*types.Review, error) {
	review, err := rs.getOwnedReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if update.Rating != nil {
		if *update.Rating < 1 || *update.Rating > 5 {
			return nil, fmt.Errorf("Rating must be between 1 and 5")
		}
		review.Rating = *update.Rating
	}
	if update.ReviewText != nil {
		review.ReviewText = *update.ReviewText
	}

	updated, uErr := rs.reviewRepo.Update(ctx, nil, review)
	if uErr != nil {
		return nil, fmt.Errorf("Failed to update review: %w", uErr)
	}
	return updated, nil
}

func (rs *reviewService) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	review, err := rs.getOwnedReview(ctx, reviewID)
	if err != nil {
		return err
	}
	return rs.reviewRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{review.ID})
}

func (rs *reviewService) getOwnedReview(ctx context.Context, reviewID uuid.UUID) (*types.Review, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("Not authenticated")
	}
	reviews, err := rs.reviewRepo.GetByIDs(ctx, nil, []uuid.UUID{reviewID})
	if err != nil {
		return nil, fmt.Errorf("Error fetching review: %w", err)
	}
	if len(reviews) == 0 || reviews[0] == nil {
		return nil, gorm.ErrRecordNotFound
	}
	if reviews[0].UserID != rd.UserID {
		return nil, gorm.ErrRecordNotFound
	}
	return reviews[0], nil
}
