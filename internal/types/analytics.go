package types

import "time"

// Report payloads returned by the analytics endpoints. Field names are part of
// the API contract consumed by the web client.

type UserStatistics struct {
	TotalMoviesWatched   int     `json:"total_movies_watched"`
	TotalReviews         int     `json:"total_reviews"`
	AverageRating        float64 `json:"average_rating"`
	WatchlistCount       int     `json:"watchlist_count"`
	WatchLaterCount      int     `json:"watch_later_count"`
	TotalGenresWatched   int     `json:"total_genres_watched"`
	MostWatchedGenre     *string `json:"most_watched_genre"`
	ReviewCompletionRate float64 `json:"review_completion_rate"`
}

type ActivityMovie struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

type ActivityDetails struct {
	Rating        *float64 `json:"rating,omitempty"`
	ReviewSnippet string   `json:"review_snippet,omitempty"`
}

type ActivityItem struct {
	Type       string           `json:"type"`
	Movie      ActivityMovie    `json:"movie"`
	ActionDate time.Time        `json:"action_date"`
	Details    *ActivityDetails `json:"details,omitempty"`
}

type RecentActivity struct {
	Activities      []ActivityItem `json:"activities"`
	TotalActivities int            `json:"total_activities"`
}

type FavoriteGenre struct {
	Genre         string   `json:"genre"`
	MovieCount    int      `json:"movie_count"`
	AverageRating *float64 `json:"average_rating"`
}

type TrendingGenre struct {
	Genre         string `json:"genre"`
	RecentWatches int    `json:"recent_watches"`
	Last30Days    bool   `json:"last_30_days"`
}

type GenreAnalytics struct {
	Distribution   map[string]int  `json:"distribution"`
	FavoriteGenres []FavoriteGenre `json:"favorite_genres"`
	TrendingGenres []TrendingGenre `json:"trending_genres"`
}

type RatingDistribution struct {
	FiveStars  int `json:"5_stars"`
	FourStars  int `json:"4_stars"`
	ThreeStars int `json:"3_stars"`
	TwoStars   int `json:"2_stars"`
	OneStar    int `json:"1_star"`
}

type RatingTrends struct {
	Last30Days     float64 `json:"last_30_days"`
	Previous30Days float64 `json:"previous_30_days"`
	Trend          string  `json:"trend"`
}

type RatingAnalytics struct {
	Distribution   RatingDistribution `json:"distribution"`
	AverageByGenre map[string]float64 `json:"average_by_genre"`
	RatingTrends   RatingTrends       `json:"rating_trends"`
}

type TimelineMovie struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Rating *float64 `json:"rating"`
}

type TimelineEntry struct {
	Date          string          `json:"date"`
	MoviesWatched int             `json:"movies_watched"`
	Movies        []TimelineMovie `json:"movies"`
}

type WatchHistorySummary struct {
	DailyAverage   float64 `json:"daily_average"`
	MostActiveDay  *string `json:"most_active_day"`
	TotalWatchTime int     `json:"total_watch_time"`
}

type WatchHistory struct {
	Timeline []TimelineEntry     `json:"timeline"`
	Summary  WatchHistorySummary `json:"summary"`
}

type TopRatedMovie struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Rating     float64   `json:"rating"`
	ReviewDate time.Time `json:"review_date"`
}

type LongestMovie struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	RuntimeMinutes int    `json:"runtime_minutes"`
}

type WatchingStreak struct {
	CurrentStreak   int `json:"current_streak"`
	LongestStreak   int `json:"longest_streak"`
	TotalActiveDays int `json:"total_active_days"`
}

type UserHighlights struct {
	TopRatedMovies       []TopRatedMovie `json:"top_rated_movies"`
	LongestMoviesWatched []LongestMovie  `json:"longest_movies_watched"`
	WatchingStreak       WatchingStreak  `json:"watching_streak"`
}
