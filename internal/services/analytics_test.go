package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/apierr"
	redisclient "github.com/yungbote/scrapbook-backend/internal/clients/redis"
	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

var analyticsNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakeReviewRepo struct {
	reviews []*types.Review
}

func (f *fakeReviewRepo) Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error) {
	f.reviews = append(f.reviews, reviews...)
	return reviews, nil
}

func (f *fakeReviewRepo) GetByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) ([]*types.Review, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range reviewIDs {
		wanted[id] = true
	}
	var out []*types.Review
	for _, r := range f.reviews {
		if wanted[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Review, error) {
	var out []*types.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByMovieID(ctx context.Context, tx *gorm.DB, movieID string) ([]*types.Review, error) {
	var out []*types.Review
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByUserAndMovieIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieIDs []string) ([]*types.Review, error) {
	wanted := map[string]bool{}
	for _, id := range movieIDs {
		wanted[id] = true
	}
	var out []*types.Review
	for _, r := range f.reviews {
		if r.UserID == userID && wanted[r.MovieID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) GetByUserIDInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Review, error) {
	var out []*types.Review
	for _, r := range f.reviews {
		if r.UserID == userID && !r.CreatedAt.Before(from) && r.CreatedAt.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
	return review, nil
}

func (f *fakeReviewRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, reviewIDs []uuid.UUID) error {
	return nil
}

func (f *fakeReviewRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	return nil
}

type fakeWatchLaterRepo struct {
	entries []*types.WatchLater
}

func (f *fakeWatchLaterRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchLater, bool, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.MovieID == movieID {
			return e, false, nil
		}
	}
	entry := &types.WatchLater{ID: uuid.New(), UserID: userID, MovieID: movieID, AddedAt: analyticsNow}
	f.entries = append(f.entries, entry)
	return entry, true, nil
}

func (f *fakeWatchLaterRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WatchLater, error) {
	var out []*types.WatchLater
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWatchLaterRepo) GetByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchLater, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.MovieID == movieID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWatchLaterRepo) FullDeleteByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) error {
	return nil
}

func (f *fakeWatchLaterRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	return nil
}

type fakeWatchEntryRepo struct {
	entries []*types.WatchEntry
}

func (f *fakeWatchEntryRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) (*types.WatchEntry, bool, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.MovieID == movieID {
			return e, false, nil
		}
	}
	entry := &types.WatchEntry{ID: uuid.New(), UserID: userID, MovieID: movieID, WatchedAt: analyticsNow}
	f.entries = append(f.entries, entry)
	return entry, true, nil
}

func (f *fakeWatchEntryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.WatchEntry, error) {
	var out []*types.WatchEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWatchEntryRepo) GetByUserIDInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.WatchEntry, error) {
	var out []*types.WatchEntry
	for _, e := range f.entries {
		if e.UserID == userID && !e.WatchedAt.Before(from) && e.WatchedAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWatchEntryRepo) FullDeleteByUserAndMovieID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, movieID string) error {
	return nil
}

func (f *fakeWatchEntryRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	return nil
}

func newTestAnalytics(t *testing.T, reviews *fakeReviewRepo, later *fakeWatchLaterRepo, watched *fakeWatchEntryRepo) (*analyticsService, *miniredis.Miniredis) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	cache := redisclient.NewStatsCacheWithClient(log, rdb)
	svc := NewAnalyticsService(log, reviews, later, watched, cache).(*analyticsService)
	svc.now = func() time.Time { return analyticsNow }
	return svc, mr
}

func testMovie(id, title string, genres []string, runtimeMinutes *int) *types.Movie {
	return &types.Movie{
		ID:             id,
		Title:          title,
		Genres:         types.GenreList(genres),
		RuntimeMinutes: runtimeMinutes,
	}
}

func watchedEntry(userID uuid.UUID, movie *types.Movie, daysAgo int) *types.WatchEntry {
	return &types.WatchEntry{
		ID:        uuid.New(),
		UserID:    userID,
		MovieID:   movie.ID,
		Movie:     movie,
		WatchedAt: analyticsNow.AddDate(0, 0, -daysAgo),
	}
}

func userReview(userID uuid.UUID, movie *types.Movie, rating float64, text string, daysAgo int) *types.Review {
	return &types.Review{
		ID:         uuid.New(),
		UserID:     userID,
		MovieID:    movie.ID,
		Movie:      movie,
		Rating:     rating,
		ReviewText: text,
		CreatedAt:  analyticsNow.AddDate(0, 0, -daysAgo),
	}
}

func intPtr(v int) *int { return &v }

func TestUserStatisticsEmptyUser(t *testing.T) {
	svc, _ := newTestAnalytics(t, &fakeReviewRepo{}, &fakeWatchLaterRepo{}, &fakeWatchEntryRepo{})

	stats, err := svc.GetUserStatistics(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetUserStatistics: %v", err)
	}
	if stats.TotalMoviesWatched != 0 || stats.TotalReviews != 0 {
		t.Fatalf("expected zero counts, got %+v", stats)
	}
	if stats.ReviewCompletionRate != 0 {
		t.Fatalf("completion rate with no watches should be 0, got %v", stats.ReviewCompletionRate)
	}
	if stats.MostWatchedGenre != nil {
		t.Fatalf("expected no most watched genre, got %q", *stats.MostWatchedGenre)
	}
	if stats.AverageRating != 0 {
		t.Fatalf("expected average rating 0, got %v", stats.AverageRating)
	}
}

func TestUserStatisticsCounts(t *testing.T) {
	userID := uuid.New()
	drama := testMovie("tt0000001", "First", []string{"drama"}, nil)
	comedy := testMovie("tt0000002", "Second", []string{"comedy", "drama"}, nil)
	thriller := testMovie("tt0000003", "Third", []string{"thriller"}, nil)

	reviews := &fakeReviewRepo{reviews: []*types.Review{
		userReview(userID, drama, 4.0, "solid", 3),
		userReview(userID, comedy, 3.5, "fun", 2),
	}}
	later := &fakeWatchLaterRepo{entries: []*types.WatchLater{
		{ID: uuid.New(), UserID: userID, MovieID: thriller.ID, Movie: thriller, AddedAt: analyticsNow},
	}}
	watched := &fakeWatchEntryRepo{entries: []*types.WatchEntry{
		watchedEntry(userID, drama, 3),
		watchedEntry(userID, comedy, 2),
		watchedEntry(userID, thriller, 1),
	}}
	svc, _ := newTestAnalytics(t, reviews, later, watched)

	stats, err := svc.GetUserStatistics(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetUserStatistics: %v", err)
	}
	if stats.TotalMoviesWatched != 3 {
		t.Fatalf("expected 3 watched, got %d", stats.TotalMoviesWatched)
	}
	if stats.TotalReviews != 2 {
		t.Fatalf("expected 2 reviews, got %d", stats.TotalReviews)
	}
	if stats.AverageRating != 3.8 {
		t.Fatalf("expected average 3.8, got %v", stats.AverageRating)
	}
	if stats.WatchLaterCount != 1 {
		t.Fatalf("expected 1 watch later entry, got %d", stats.WatchLaterCount)
	}
	if stats.TotalGenresWatched != 3 {
		t.Fatalf("expected 3 distinct genres, got %d", stats.TotalGenresWatched)
	}
	// drama appears twice, comedy and thriller once each.
	if stats.MostWatchedGenre == nil || *stats.MostWatchedGenre != "drama" {
		t.Fatalf("expected most watched genre drama, got %v", stats.MostWatchedGenre)
	}
	// 2 reviews over 3 watches.
	if stats.ReviewCompletionRate != 66.7 {
		t.Fatalf("expected completion rate 66.7, got %v", stats.ReviewCompletionRate)
	}
}

func TestUserStatisticsServedFromCache(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "First", []string{"drama"}, nil)
	watched := &fakeWatchEntryRepo{entries: []*types.WatchEntry{watchedEntry(userID, movie, 1)}}
	svc, _ := newTestAnalytics(t, &fakeReviewRepo{}, &fakeWatchLaterRepo{}, watched)
	ctx := context.Background()

	first, err := svc.GetUserStatistics(ctx, userID)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first.TotalMoviesWatched != 1 {
		t.Fatalf("expected 1 watched, got %d", first.TotalMoviesWatched)
	}

	// New records land after the snapshot; the cached copy keeps serving
	// until its TTL passes.
	other := testMovie("tt0000002", "Second", []string{"comedy"}, nil)
	watched.entries = append(watched.entries, watchedEntry(userID, other, 0))

	second, err := svc.GetUserStatistics(ctx, userID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.TotalMoviesWatched != 1 {
		t.Fatalf("expected cached count 1, got %d", second.TotalMoviesWatched)
	}
}

func TestUserStatisticsRecomputesAfterExpiry(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "First", []string{"drama"}, nil)
	watched := &fakeWatchEntryRepo{entries: []*types.WatchEntry{watchedEntry(userID, movie, 1)}}
	svc, mr := newTestAnalytics(t, &fakeReviewRepo{}, &fakeWatchLaterRepo{}, watched)
	ctx := context.Background()

	if _, err := svc.GetUserStatistics(ctx, userID); err != nil {
		t.Fatalf("first call: %v", err)
	}
	other := testMovie("tt0000002", "Second", []string{"comedy"}, nil)
	watched.entries = append(watched.entries, watchedEntry(userID, other, 0))

	mr.FastForward(time.Hour + time.Second)

	stats, err := svc.GetUserStatistics(ctx, userID)
	if err != nil {
		t.Fatalf("post-expiry call: %v", err)
	}
	if stats.TotalMoviesWatched != 2 {
		t.Fatalf("expected fresh count 2 after expiry, got %d", stats.TotalMoviesWatched)
	}
}

func TestRecentActivityOrderAndSnippet(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "First", []string{"drama"}, nil)
	longText := strings.Repeat("x", 150)

	reviews := &fakeReviewRepo{reviews: []*types.Review{
		userReview(userID, movie, 4.0, longText, 5),
	}}
	watched := &fakeWatchEntryRepo{entries: []*types.WatchEntry{
		watchedEntry(userID, movie, 1),
	}}
	svc, _ := newTestAnalytics(t, reviews, &fakeWatchLaterRepo{}, watched)

	activity, err := svc.GetRecentActivity(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetRecentActivity: %v", err)
	}
	if activity.TotalActivities != 2 {
		t.Fatalf("expected 2 activities, got %d", activity.TotalActivities)
	}
	if activity.Activities[0].Type != "watch" {
		t.Fatalf("expected newest activity first, got %q", activity.Activities[0].Type)
	}
	reviewItem := activity.Activities[1]
	if reviewItem.Type != "review" || reviewItem.Details == nil {
		t.Fatalf("expected review activity with details, got %+v", reviewItem)
	}
	if got := len([]rune(reviewItem.Details.ReviewSnippet)); got != 100 {
		t.Fatalf("expected snippet of 100 runes, got %d", got)
	}
	if reviewItem.Details.Rating == nil || *reviewItem.Details.Rating != 4.0 {
		t.Fatalf("expected rating 4.0 on review activity, got %v", reviewItem.Details.Rating)
	}
}

func TestGenreAnalyticsMultiGenreMovie(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "Both", []string{"drama", "comedy"}, nil)

	reviews := &fakeReviewRepo{reviews: []*types.Review{
		userReview(userID, movie, 4.0, "", 2),
	}}
	watched := &fakeWatchEntryRepo{entries: []*types.WatchEntry{
		watchedEntry(userID, movie, 2),
	}}
	svc, _ := newTestAnalytics(t, reviews, &fakeWatchLaterRepo{}, watched)

	genres, err := svc.GetGenreAnalytics(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetGenreAnalytics: %v", err)
	}
	// One watch of a two-genre movie counts once per genre.
	if genres.Distribution["drama"] != 1 || genres.Distribution["comedy"] != 1 {
		t.Fatalf("unexpected distribution: %v", genres.Distribution)
	}
	if len(genres.FavoriteGenres) != 2 {
		t.Fatalf("expected 2 favorite genres, got %d", len(genres.FavoriteGenres))
	}
	for _, fav := range genres.FavoriteGenres {
		if fav.MovieCount != 1 {
			t.Fatalf("genre %q expected movie count 1, got %d", fav.Genre, fav.MovieCount)
		}
		if fav.AverageRating == nil || *fav.AverageRating != 4.0 {
			t.Fatalf("genre %q expected average 4.0, got %v", fav.Genre, fav.AverageRating)
		}
	}
	// Watched two days ago, so both genres trend in the 30-day window.
	if len(genres.TrendingGenres) != 2 {
		t.Fatalf("expected 2 trending genres, got %d", len(genres.TrendingGenres))
	}
	for _, tg := range genres.TrendingGenres {
		if tg.RecentWatches != 1 || !tg.Last30Days {
			t.Fatalf("unexpected trending entry: %+v", tg)
		}
	}
}

func TestGenreAnalyticsUnreviewedGenreHasNilAverage(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "Unreviewed", []string{"horror"}, nil)
	watched := &fakeWatchEntryRepo{entries: []*types.WatchEntry{
		watchedEntry(userID, movie, 40),
	}}
	svc, _ := newTestAnalytics(t, &fakeReviewRepo{}, &fakeWatchLaterRepo{}, watched)

	genres, err := svc.GetGenreAnalytics(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetGenreAnalytics: %v", err)
	}
	if len(genres.FavoriteGenres) != 1 {
		t.Fatalf("expected 1 favorite genre, got %d", len(genres.FavoriteGenres))
	}
	if genres.FavoriteGenres[0].AverageRating != nil {
		t.Fatalf("expected nil average for unreviewed genre, got %v", *genres.FavoriteGenres[0].AverageRating)
	}
	// Watched 40 days ago, outside the trending window.
	if len(genres.TrendingGenres) != 0 {
		t.Fatalf("expected no trending genres, got %v", genres.TrendingGenres)
	}
}

func TestRatingDistributionBuckets(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "M", nil, nil)

	reviews := &fakeReviewRepo{reviews: []*types.Review{
		userReview(userID, movie, 4.6, "", 1),
		userReview(userID, movie, 3.0, "", 1),
		userReview(userID, movie, 1.4, "", 1),
		userReview(userID, movie, 0.5, "", 1),
	}}
	svc, _ := newTestAnalytics(t, reviews, &fakeWatchLaterRepo{}, &fakeWatchEntryRepo{})

	ratings, err := svc.GetRatingAnalytics(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetRatingAnalytics: %v", err)
	}
	dist := ratings.Distribution
	if dist.FiveStars != 1 {
		t.Fatalf("4.6 should round to five stars, got %d", dist.FiveStars)
	}
	if dist.ThreeStars != 1 {
		t.Fatalf("3.0 should land in three stars, got %d", dist.ThreeStars)
	}
	if dist.OneStar != 2 {
		t.Fatalf("1.4 and 0.5 should both fall into one star, got %d", dist.OneStar)
	}
	if dist.FourStars != 0 || dist.TwoStars != 0 {
		t.Fatalf("unexpected counts in untouched buckets: %+v", dist)
	}
}

func TestRatingTrendsLoneRecentReview(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "M", nil, nil)
	reviews := &fakeReviewRepo{reviews: []*types.Review{
		userReview(userID, movie, 3.0, "", 5),
	}}
	svc, _ := newTestAnalytics(t, reviews, &fakeWatchLaterRepo{}, &fakeWatchEntryRepo{})

	ratings, err := svc.GetRatingAnalytics(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetRatingAnalytics: %v", err)
	}
	trends := ratings.RatingTrends
	if trends.Last30Days != 3.0 {
		t.Fatalf("expected recent mean 3.0, got %v", trends.Last30Days)
	}
	if trends.Previous30Days != 0 {
		t.Fatalf("expected empty previous window to read 0, got %v", trends.Previous30Days)
	}
	if trends.Trend != "increasing" {
		t.Fatalf("expected trend increasing, got %q", trends.Trend)
	}
}

func TestRatingTrendsDecreasing(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "M", nil, nil)
	reviews := &fakeReviewRepo{reviews: []*types.Review{
		userReview(userID, movie, 2.0, "", 5),
		userReview(userID, movie, 4.5, "", 45),
	}}
	svc, _ := newTestAnalytics(t, reviews, &fakeWatchLaterRepo{}, &fakeWatchEntryRepo{})

	ratings, err := svc.GetRatingAnalytics(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetRatingAnalytics: %v", err)
	}
	if ratings.RatingTrends.Trend != "decreasing" {
		t.Fatalf("expected trend decreasing, got %q", ratings.RatingTrends.Trend)
	}
}

func TestRatingAverageByGenre(t *testing.T) {
	userID := uuid.New()
	first := testMovie("tt0000001", "First", []string{"drama"}, nil)
	second := testMovie("tt0000002", "Second", []string{"drama"}, nil)
	reviews := &fakeReviewRepo{reviews: []*types.Review{
		userReview(userID, first, 4.0, "", 1),
		userReview(userID, second, 3.5, "", 1),
	}}
	svc, _ := newTestAnalytics(t, reviews, &fakeWatchLaterRepo{}, &fakeWatchEntryRepo{})

	ratings, err := svc.GetRatingAnalytics(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetRatingAnalytics: %v", err)
	}
	if got := ratings.AverageByGenre["drama"]; got != 3.8 {
		t.Fatalf("expected drama average 3.8, got %v", got)
	}
}

func TestWatchHistoryEmptyWeek(t *testing.T) {
	svc, _ := newTestAnalytics(t, &fakeReviewRepo{}, &fakeWatchLaterRepo{}, &fakeWatchEntryRepo{})

	history, err := svc.GetWatchHistory(context.Background(), uuid.New(), "week")
	if err != nil {
		t.Fatalf("GetWatchHistory: %v", err)
	}
	if len(history.Timeline) != 0 {
		t.Fatalf("expected empty timeline, got %d entries", len(history.Timeline))
	}
	if history.Summary.DailyAverage != 0 {
		t.Fatalf("expected daily average 0, got %v", history.Summary.DailyAverage)
	}
	if history.Summary.MostActiveDay != nil {
		t.Fatalf("expected nil most active day, got %q", *history.Summary.MostActiveDay)
	}
	if history.Summary.TotalWatchTime != 0 {
		t.Fatalf("expected total watch time 0, got %d", history.Summary.TotalWatchTime)
	}
}

func TestWatchHistoryInvalidTimeframe(t *testing.T) {
	svc, _ := newTestAnalytics(t, &fakeReviewRepo{}, &fakeWatchLaterRepo{}, &fakeWatchEntryRepo{})

	_, err := svc.GetWatchHistory(context.Background(), uuid.New(), "decade")
	if err == nil {
		t.Fatalf("expected error for unknown timeframe")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr.Error, got %T", err)
	}
	if ae.Status != 400 {
		t.Fatalf("expected status 400, got %d", ae.Status)
	}
	if ae.Code != "timeframe" {
		t.Fatalf("expected code to name the timeframe field, got %q", ae.Code)
	}
}

func TestWatchHistoryGroupsByDay(t *testing.T) {
	userID := uuid.New()
	first := testMovie("tt0000001", "First", nil, intPtr(120))
	second := testMovie("tt0000002", "Second", nil, intPtr(90))
	third := testMovie("tt0000003", "Third", nil, nil)

	reviews := &fakeReviewRepo{reviews: []*types.Review{
		userReview(userID, first, 4.5, "", 2),
	}}
	watched := &fakeWatchEntryRepo{entries: []*types.WatchEntry{
		watchedEntry(userID, first, 2),
		watchedEntry(userID, second, 2),
		watchedEntry(userID, third, 1),
	}}
	svc, _ := newTestAnalytics(t, reviews, &fakeWatchLaterRepo{}, watched)

	history, err := svc.GetWatchHistory(context.Background(), userID, "month")
	if err != nil {
		t.Fatalf("GetWatchHistory: %v", err)
	}
	if len(history.Timeline) != 2 {
		t.Fatalf("expected 2 timeline days, got %d", len(history.Timeline))
	}
	busyDay := history.Timeline[0]
	if busyDay.MoviesWatched != 2 || len(busyDay.Movies) != 2 {
		t.Fatalf("expected 2 movies on the first day, got %+v", busyDay)
	}
	if busyDay.Movies[0].Rating == nil || *busyDay.Movies[0].Rating != 4.5 {
		t.Fatalf("expected reviewed movie to carry its rating, got %v", busyDay.Movies[0].Rating)
	}
	if busyDay.Movies[1].Rating != nil {
		t.Fatalf("expected unreviewed movie without rating, got %v", *busyDay.Movies[1].Rating)
	}
	if history.Summary.TotalWatchTime != 210 {
		t.Fatalf("expected 210 minutes total, got %d", history.Summary.TotalWatchTime)
	}
	// 3 entries over a 30-day window.
	if history.Summary.DailyAverage != 0.1 {
		t.Fatalf("expected daily average 0.1, got %v", history.Summary.DailyAverage)
	}
	if history.Summary.MostActiveDay == nil {
		t.Fatalf("expected a most active day")
	}
}

func TestWatchHistoryDefaultsToMonth(t *testing.T) {
	userID := uuid.New()
	movie := testMovie("tt0000001", "M", nil, nil)
	watched := &fakeWatchEntryRepo{entries: []*types.WatchEntry{
		// 20 days back is inside a month but outside a week.
		watchedEntry(userID, movie, 20),
	}}
	svc, _ := newTestAnalytics(t, &fakeReviewRepo{}, &fakeWatchLaterRepo{}, watched)

	history, err := svc.GetWatchHistory(context.Background(), userID, "")
	if err != nil {
		t.Fatalf("GetWatchHistory: %v", err)
	}
	if len(history.Timeline) != 1 {
		t.Fatalf("expected the default month window to include the entry, got %d days", len(history.Timeline))
	}
}

func TestWatchingStreaks(t *testing.T) {
	userID := uuid.New()
	movies := []*types.Movie{
		testMovie("tt0000001", "A", nil, nil),
		testMovie("tt0000002", "B", nil, nil),
		testMovie("tt0000003", "C", nil, nil),
		testMovie("tt0000004", "D", nil, nil),
		testMovie("tt0000005", "E", nil, nil),
	}
	daysAgo := []int{0, 1, 2, 5, 6}
	watched := &fakeWatchEntryRepo{}
	for i, m := range movies {
		watched.entries = append(watched.entries, watchedEntry(userID, m, daysAgo[i]))
	}
	svc, _ := newTestAnalytics(t, &fakeReviewRepo{}, &fakeWatchLaterRepo{}, watched)

	highlights, err := svc.GetUserHighlights(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetUserHighlights: %v", err)
	}
	streak := highlights.WatchingStreak
	if streak.CurrentStreak != 3 {
		t.Fatalf("expected current streak 3, got %d", streak.CurrentStreak)
	}
	if streak.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", streak.LongestStreak)
	}
	if streak.TotalActiveDays != 5 {
		t.Fatalf("expected 5 active days, got %d", streak.TotalActiveDays)
	}
}

func TestUserHighlightsTopAndLongest(t *testing.T) {
	userID := uuid.New()
	var reviews fakeReviewRepo
	var watched fakeWatchEntryRepo
	ratings := []float64{2.0, 4.5, 3.0, 5.0, 1.0, 4.0}
	for i, rating := range ratings {
		movie := testMovie("tt000000"+string(rune('1'+i)), "M", nil, nil)
		reviews.reviews = append(reviews.reviews, userReview(userID, movie, rating, "", i+1))
	}
	long := testMovie("tt0000010", "Long", nil, intPtr(200))
	short := testMovie("tt0000011", "Short", nil, intPtr(80))
	unknown := testMovie("tt0000012", "Unknown", nil, nil)
	watched.entries = append(watched.entries,
		watchedEntry(userID, short, 3),
		watchedEntry(userID, long, 2),
		watchedEntry(userID, unknown, 1),
	)
	svc, _ := newTestAnalytics(t, &reviews, &fakeWatchLaterRepo{}, &watched)

	highlights, err := svc.GetUserHighlights(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetUserHighlights: %v", err)
	}
	if len(highlights.TopRatedMovies) != 5 {
		t.Fatalf("expected 5 top rated movies, got %d", len(highlights.TopRatedMovies))
	}
	if highlights.TopRatedMovies[0].Rating != 5.0 {
		t.Fatalf("expected highest rating first, got %v", highlights.TopRatedMovies[0].Rating)
	}
	// The 1.0 review falls outside the top five.
	for _, m := range highlights.TopRatedMovies {
		if m.Rating == 1.0 {
			t.Fatalf("lowest rated review should not make the top five")
		}
	}
	if len(highlights.LongestMoviesWatched) != 2 {
		t.Fatalf("expected 2 movies with known runtime, got %d", len(highlights.LongestMoviesWatched))
	}
	if highlights.LongestMoviesWatched[0].RuntimeMinutes != 200 {
		t.Fatalf("expected longest movie first, got %d minutes", highlights.LongestMoviesWatched[0].RuntimeMinutes)
	}
}
