package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/services"
)

type WatchlistHandler struct {
	watchlistService services.WatchlistService
}

func NewWatchlistHandler(watchlistService services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

func (wh *WatchlistHandler) ListWatchLater(c *gin.Context) {
	entries, err := wh.watchlistService.ListWatchLater(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (wh *WatchlistHandler) AddWatchLater(c *gin.Context) {
	entry, created, err := wh.watchlistService.AddWatchLater(c.Request.Context(), c.Param("movie_id"))
	if err != nil {
		wh.writeError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, entry)
}

func (wh *WatchlistHandler) RemoveWatchLater(c *gin.Context) {
	if err := wh.watchlistService.RemoveWatchLater(c.Request.Context(), c.Param("movie_id")); err != nil {
		wh.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (wh *WatchlistHandler) ListWatched(c *gin.Context) {
	entries, err := wh.watchlistService.ListWatched(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (wh *WatchlistHandler) AddWatched(c *gin.Context) {
	entry, created, err := wh.watchlistService.AddWatched(c.Request.Context(), c.Param("movie_id"))
	if err != nil {
		wh.writeError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, entry)
}

func (wh *WatchlistHandler) RemoveWatched(c *gin.Context) {
	if err := wh.watchlistService.RemoveWatched(c.Request.Context(), c.Param("movie_id")); err != nil {
		wh.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (wh *WatchlistHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
