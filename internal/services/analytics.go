package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/scrapbook-backend/internal/apierr"
	redisclient "github.com/yungbote/scrapbook-backend/internal/clients/redis"
	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/repos"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

const (
	statsCacheKeyPrefix = "user:stats:"
	statsCacheTTL       = 3600 * time.Second

	trendWindow    = 30 * 24 * time.Hour
	streakLookback = 30

	activitySnippetLen = 100
	highlightCount     = 5
)

var timeframeDays = map[string]int{
	"week":  7,
	"month": 30,
	"year":  365,
}

// AnalyticsService turns one user's review and watch records into the report
// payloads the profile pages render. Every report is a synchronous read; the
// only write anywhere is the summary-statistics cache entry.
type AnalyticsService interface {
	GetUserStatistics(ctx context.Context, userID uuid.UUID) (*types.UserStatistics, error)
	GetRecentActivity(ctx context.Context, userID uuid.UUID) (*types.RecentActivity, error)
	GetGenreAnalytics(ctx context.Context, userID uuid.UUID) (*types.GenreAnalytics, error)
	GetRatingAnalytics(ctx context.Context, userID uuid.UUID) (*types.RatingAnalytics, error)
	GetWatchHistory(ctx context.Context, userID uuid.UUID, timeframe string) (*types.WatchHistory, error)
	GetUserHighlights(ctx context.Context, userID uuid.UUID) (*types.UserHighlights, error)
}

type analyticsService struct {
	log            *logger.Logger
	reviewRepo     repos.ReviewRepo
	watchLaterRepo repos.WatchLaterRepo
	watchEntryRepo repos.WatchEntryRepo
	statsCache     redisclient.StatsCache
	now            func() time.Time
}

func NewAnalyticsService(
	log *logger.Logger,
	reviewRepo repos.ReviewRepo,
	watchLaterRepo repos.WatchLaterRepo,
	watchEntryRepo repos.WatchEntryRepo,
	statsCache redisclient.StatsCache,
) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{
		log:            serviceLog,
		reviewRepo:     reviewRepo,
		watchLaterRepo: watchLaterRepo,
		watchEntryRepo: watchEntryRepo,
		statsCache:     statsCache,
		now:            time.Now,
	}
}

func (s *analyticsService) GetUserStatistics(ctx context.Context, userID uuid.UUID) (*types.UserStatistics, error) {
	cacheKey := statsCacheKeyPrefix + userID.String()
	if raw, ok, cErr := s.statsCache.Get(ctx, cacheKey); cErr == nil && ok {
		var cached types.UserStatistics
		if uErr := json.Unmarshal(raw, &cached); uErr == nil {
			return &cached, nil
		}
	} else if cErr != nil {
		s.log.Warn("Stats cache read failed, recomputing", "error", cErr)
	}

	watched, err := s.watchEntryRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching watch entries: %w", err)
	}
	reviews, err := s.reviewRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching reviews: %w", err)
	}
	watchLater, err := s.watchLaterRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching watch later entries: %w", err)
	}

	averageRating := 0.0
	if len(reviews) > 0 {
		sum := 0.0
		for _, r := range reviews {
			sum += r.Rating
		}
		averageRating = round1(sum / float64(len(reviews)))
	}

	genreCounts := newOrderedCounter()
	for _, entry := range watched {
		if entry.Movie == nil {
			continue
		}
		for _, genre := range entry.Movie.Genres {
			genreCounts.Add(genre, 1)
		}
	}

	completionRate := 0.0
	if len(watched) > 0 {
		completionRate = round1(float64(len(reviews)) / float64(len(watched)) * 100)
	}

	stats := &types.UserStatistics{
		TotalMoviesWatched:   len(watched),
		TotalReviews:         len(reviews),
		AverageRating:        averageRating,
		WatchlistCount:       len(watched),
		WatchLaterCount:      len(watchLater),
		TotalGenresWatched:   genreCounts.Len(),
		MostWatchedGenre:     genreCounts.Top(),
		ReviewCompletionRate: completionRate,
	}

	if raw, mErr := json.Marshal(stats); mErr == nil {
		if cErr := s.statsCache.Set(ctx, cacheKey, raw, statsCacheTTL); cErr != nil {
			s.log.Warn("Stats cache write failed", "error", cErr)
		}
	}
	return stats, nil
}

func (s *analyticsService) GetRecentActivity(ctx context.Context, userID uuid.UUID) (*types.RecentActivity, error) {
	reviews, err := s.reviewRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching reviews: %w", err)
	}
	watched, err := s.watchEntryRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching watch entries: %w", err)
	}

	activities := make([]types.ActivityItem, 0, len(reviews)+len(watched))
	for _, r := range reviews {
		rating := r.Rating
		activities = append(activities, types.ActivityItem{
			Type:       "review",
			Movie:      activityMovie(r.Movie, r.MovieID),
			ActionDate: r.CreatedAt,
			Details: &types.ActivityDetails{
				Rating:        &rating,
				ReviewSnippet: snippet(r.ReviewText, activitySnippetLen),
			},
		})
	}
	for _, w := range watched {
		activities = append(activities, types.ActivityItem{
			Type:       "watch",
			Movie:      activityMovie(w.Movie, w.MovieID),
			ActionDate: w.WatchedAt,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].ActionDate.After(activities[j].ActionDate)
	})

	return &types.RecentActivity{
		Activities:      activities,
		TotalActivities: len(activities),
	}, nil
}

func (s *analyticsService) GetGenreAnalytics(ctx context.Context, userID uuid.UUID) (*types.GenreAnalytics, error) {
	watched, err := s.watchEntryRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching watch entries: %w", err)
	}
	now := s.now().UTC()
	recent, err := s.watchEntryRepo.GetByUserIDInRange(ctx, nil, userID, now.Add(-trendWindow), now)
	if err != nil {
		return nil, fmt.Errorf("Error fetching recent watch entries: %w", err)
	}

	reviewByMovie, err := s.reviewsByMovieID(ctx, userID, watched)
	if err != nil {
		return nil, err
	}

	distribution := newOrderedCounter()
	ratingsByGenre := map[string][]float64{}
	for _, entry := range watched {
		if entry.Movie == nil {
			continue
		}
		review, hasReview := reviewByMovie[entry.MovieID]
		for _, genre := range entry.Movie.Genres {
			distribution.Add(genre, 1)
			if hasReview {
				ratingsByGenre[genre] = append(ratingsByGenre[genre], review.Rating)
			}
		}
	}

	favorites := make([]types.FavoriteGenre, 0, distribution.Len())
	for _, genre := range distribution.Keys() {
		fav := types.FavoriteGenre{
			Genre:      genre,
			MovieCount: distribution.Count(genre),
		}
		if ratings := ratingsByGenre[genre]; len(ratings) > 0 {
			avg := round1(mean(ratings))
			fav.AverageRating = &avg
		}
		favorites = append(favorites, fav)
	}
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].MovieCount > favorites[j].MovieCount
	})

	recentCounts := newOrderedCounter()
	for _, entry := range recent {
		if entry.Movie == nil {
			continue
		}
		for _, genre := range entry.Movie.Genres {
			recentCounts.Add(genre, 1)
		}
	}
	trending := make([]types.TrendingGenre, 0, recentCounts.Len())
	for _, genre := range recentCounts.Keys() {
		trending = append(trending, types.TrendingGenre{
			Genre:         genre,
			RecentWatches: recentCounts.Count(genre),
			Last30Days:    true,
		})
	}
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].RecentWatches > trending[j].RecentWatches
	})

	return &types.GenreAnalytics{
		Distribution:   distribution.Map(),
		FavoriteGenres: favorites,
		TrendingGenres: trending,
	}, nil
}

func (s *analyticsService) GetRatingAnalytics(ctx context.Context, userID uuid.UUID) (*types.RatingAnalytics, error) {
	reviews, err := s.reviewRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching reviews: %w", err)
	}

	var dist types.RatingDistribution
	ratingsByGenre := map[string][]float64{}
	for _, r := range reviews {
		// Nearest-integer bucket with a catch-all lowest bucket: anything
		// rounding below 2 counts as one star.
		switch int(math.Round(r.Rating)) {
		case 5:
			dist.FiveStars++
		case 4:
			dist.FourStars++
		case 3:
			dist.ThreeStars++
		case 2:
			dist.TwoStars++
		default:
			dist.OneStar++
		}
		if r.Movie != nil {
			for _, genre := range r.Movie.Genres {
				ratingsByGenre[genre] = append(ratingsByGenre[genre], r.Rating)
			}
		}
	}

	averageByGenre := make(map[string]float64, len(ratingsByGenre))
	for genre, ratings := range ratingsByGenre {
		averageByGenre[genre] = round1(mean(ratings))
	}

	now := s.now().UTC()
	recentCutoff := now.Add(-trendWindow)
	previousCutoff := now.Add(-2 * trendWindow)
	var recentRatings, previousRatings []float64
	for _, r := range reviews {
		created := r.CreatedAt.UTC()
		switch {
		case !created.Before(recentCutoff):
			recentRatings = append(recentRatings, r.Rating)
		case !created.Before(previousCutoff):
			previousRatings = append(previousRatings, r.Rating)
		}
	}

	// Empty windows fall back to a mean of 0, so a lone recent review reads
	// as "increasing". That matches what the profile page has always shown.
	recentMean := 0.0
	if len(recentRatings) > 0 {
		recentMean = round1(mean(recentRatings))
	}
	previousMean := 0.0
	if len(previousRatings) > 0 {
		previousMean = round1(mean(previousRatings))
	}
	trend := "stable"
	if recentMean > previousMean {
		trend = "increasing"
	} else if recentMean < previousMean {
		trend = "decreasing"
	}

	return &types.RatingAnalytics{
		Distribution:   dist,
		AverageByGenre: averageByGenre,
		RatingTrends: types.RatingTrends{
			Last30Days:     recentMean,
			Previous30Days: previousMean,
			Trend:          trend,
		},
	}, nil
}

func (s *analyticsService) GetWatchHistory(ctx context.Context, userID uuid.UUID, timeframe string) (*types.WatchHistory, error) {
	if timeframe == "" {
		timeframe = "month"
	}
	days, ok := timeframeDays[timeframe]
	if !ok {
		return nil, apierr.Validation("timeframe", fmt.Errorf("invalid timeframe %q: must be one of week, month, year", timeframe))
	}

	now := s.now().UTC()
	since := now.AddDate(0, 0, -days)
	entries, err := s.watchEntryRepo.GetByUserIDInRange(ctx, nil, userID, since, now)
	if err != nil {
		return nil, fmt.Errorf("Error fetching watch entries: %w", err)
	}

	reviewByMovie, err := s.reviewsByMovieID(ctx, userID, entries)
	if err != nil {
		return nil, err
	}

	var dateOrder []string
	grouped := map[string][]types.TimelineMovie{}
	weekdayCounts := newOrderedCounter()
	totalWatchTime := 0
	for _, entry := range entries {
		day := entry.WatchedAt.UTC().Format("2006-01-02")
		if _, seen := grouped[day]; !seen {
			dateOrder = append(dateOrder, day)
		}
		tm := types.TimelineMovie{ID: entry.MovieID}
		if entry.Movie != nil {
			tm.Title = entry.Movie.Title
			if entry.Movie.RuntimeMinutes != nil {
				totalWatchTime += *entry.Movie.RuntimeMinutes
			}
		}
		if review, hasReview := reviewByMovie[entry.MovieID]; hasReview {
			rating := review.Rating
			tm.Rating = &rating
		}
		grouped[day] = append(grouped[day], tm)
		weekdayCounts.Add(entry.WatchedAt.UTC().Weekday().String(), 1)
	}

	timeline := make([]types.TimelineEntry, 0, len(dateOrder))
	for _, day := range dateOrder {
		timeline = append(timeline, types.TimelineEntry{
			Date:          day,
			MoviesWatched: len(grouped[day]),
			Movies:        grouped[day],
		})
	}

	spanDays := days
	if spanDays < 1 {
		spanDays = 1
	}
	dailyAverage := 0.0
	if len(entries) > 0 {
		dailyAverage = round1(float64(len(entries)) / float64(spanDays))
	}

	return &types.WatchHistory{
		Timeline: timeline,
		Summary: types.WatchHistorySummary{
			DailyAverage:   dailyAverage,
			MostActiveDay:  weekdayCounts.Top(),
			TotalWatchTime: totalWatchTime,
		},
	}, nil
}

func (s *analyticsService) GetUserHighlights(ctx context.Context, userID uuid.UUID) (*types.UserHighlights, error) {
	reviews, err := s.reviewRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching reviews: %w", err)
	}
	watched, err := s.watchEntryRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Error fetching watch entries: %w", err)
	}

	topRated := make([]*types.Review, len(reviews))
	copy(topRated, reviews)
	sort.SliceStable(topRated, func(i, j int) bool {
		return topRated[i].Rating > topRated[j].Rating
	})
	if len(topRated) > highlightCount {
		topRated = topRated[:highlightCount]
	}
	topRatedMovies := make([]types.TopRatedMovie, 0, len(topRated))
	for _, r := range topRated {
		title := ""
		if r.Movie != nil {
			title = r.Movie.Title
		}
		topRatedMovies = append(topRatedMovies, types.TopRatedMovie{
			ID:         r.MovieID,
			Title:      title,
			Rating:     r.Rating,
			ReviewDate: r.CreatedAt,
		})
	}

	withRuntime := make([]*types.WatchEntry, 0, len(watched))
	for _, w := range watched {
		if w.Movie != nil && w.Movie.RuntimeMinutes != nil {
			withRuntime = append(withRuntime, w)
		}
	}
	sort.SliceStable(withRuntime, func(i, j int) bool {
		return *withRuntime[i].Movie.RuntimeMinutes > *withRuntime[j].Movie.RuntimeMinutes
	})
	if len(withRuntime) > highlightCount {
		withRuntime = withRuntime[:highlightCount]
	}
	longest := make([]types.LongestMovie, 0, len(withRuntime))
	for _, w := range withRuntime {
		longest = append(longest, types.LongestMovie{
			ID:             w.MovieID,
			Title:          w.Movie.Title,
			RuntimeMinutes: *w.Movie.RuntimeMinutes,
		})
	}

	return &types.UserHighlights{
		TopRatedMovies:       topRatedMovies,
		LongestMoviesWatched: longest,
		WatchingStreak:       s.computeStreak(watched),
	}, nil
}

// reviewsByMovieID bulk-fetches the user's reviews for the movies in the
// given watch entries and indexes them by movie id.
func (s *analyticsService) reviewsByMovieID(ctx context.Context, userID uuid.UUID, entries []*types.WatchEntry) (map[string]*types.Review, error) {
	movieIDs := make([]string, 0, len(entries))
	seen := map[string]bool{}
	for _, entry := range entries {
		if !seen[entry.MovieID] {
			seen[entry.MovieID] = true
			movieIDs = append(movieIDs, entry.MovieID)
		}
	}
	reviews, err := s.reviewRepo.GetByUserAndMovieIDs(ctx, nil, userID, movieIDs)
	if err != nil {
		return nil, fmt.Errorf("Error fetching reviews for watched movies: %w", err)
	}
	byMovie := make(map[string]*types.Review, len(reviews))
	for _, r := range reviews {
		byMovie[r.MovieID] = r
	}
	return byMovie, nil
}

func (s *analyticsService) computeStreak(watched []*types.WatchEntry) types.WatchingStreak {
	dateSet := map[string]bool{}
	for _, w := range watched {
		dateSet[w.WatchedAt.UTC().Format("2006-01-02")] = true
	}

	today := s.now().UTC()
	current := 0
	for i := 0; i < streakLookback; i++ {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		if !dateSet[day] {
			break
		}
		current++
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	longest := 0
	run := 0
	var prev time.Time
	for i, d := range dates {
		day, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if i > 0 && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}

	return types.WatchingStreak{
		CurrentStreak:   current,
		LongestStreak:   longest,
		TotalActiveDays: len(dateSet),
	}
}

func activityMovie(movie *types.Movie, movieID string) types.ActivityMovie {
	am := types.ActivityMovie{ID: movieID}
	if movie != nil {
		am.Title = movie.Title
		am.ImageURL = movie.ImageURL
	}
	return am
}

func snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// orderedCounter counts occurrences while remembering first-encounter order,
// which is the tie-break for "most watched" and "most active" picks.
type orderedCounter struct {
	keys   []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: map[string]int{}}
}

func (c *orderedCounter) Add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
}

func (c *orderedCounter) Count(key string) int { return c.counts[key] }

func (c *orderedCounter) Len() int { return len(c.keys) }

func (c *orderedCounter) Keys() []string { return c.keys }

// Top returns the key with the highest count, earliest-seen winning ties, or
// nil when nothing was counted.
func (c *orderedCounter) Top() *string {
	if len(c.keys) == 0 {
		return nil
	}
	best := c.keys[0]
	for _, k := range c.keys[1:] {
		if c.counts[k] > c.counts[best] {
			best = k
		}
	}
	return &best
}

func (c *orderedCounter) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
