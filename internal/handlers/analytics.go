package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/scrapbook-backend/internal/apierr"
	"github.com/yungbote/scrapbook-backend/internal/requestdata"
	"github.com/yungbote/scrapbook-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (ah *AnalyticsHandler) UserStatistics(c *gin.Context) {
	userID, ok := ah.currentUser(c)
	if !ok {
		return
	}
	stats, err := ah.analyticsService.GetUserStatistics(c.Request.Context(), userID)
	if err != nil {
		ah.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ah *AnalyticsHandler) RecentActivity(c *gin.Context) {
	userID, ok := ah.currentUser(c)
	if !ok {
		return
	}
	activity, err := ah.analyticsService.GetRecentActivity(c.Request.Context(), userID)
	if err != nil {
		ah.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

func (ah *AnalyticsHandler) GenreAnalytics(c *gin.Context) {
	userID, ok := ah.currentUser(c)
	if !ok {
		return
	}
	genres, err := ah.analyticsService.GetGenreAnalytics(c.Request.Context(), userID)
	if err != nil {
		ah.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

func (ah *AnalyticsHandler) RatingAnalytics(c *gin.Context) {
	userID, ok := ah.currentUser(c)
	if !ok {
		return
	}
	ratings, err := ah.analyticsService.GetRatingAnalytics(c.Request.Context(), userID)
	if err != nil {
		ah.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

func (ah *AnalyticsHandler) WatchHistory(c *gin.Context) {
	userID, ok := ah.currentUser(c)
	if !ok {
		return
	}
	history, err := ah.analyticsService.GetWatchHistory(c.Request.Context(), userID, c.Query("timeframe"))
	if err != nil {
		ah.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (ah *AnalyticsHandler) UserHighlights(c *gin.Context) {
	userID, ok := ah.currentUser(c)
	if !ok {
		return
	}
	highlights, err := ah.analyticsService.GetUserHighlights(c.Request.Context(), userID)
	if err != nil {
		ah.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, highlights)
}

func (ah *AnalyticsHandler) currentUser(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func (ah *AnalyticsHandler) writeError(c *gin.Context, err error) {
	c.JSON(apierr.StatusOf(err, http.StatusInternalServerError), gin.H{"error": err.Error()})
}
