package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/services"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type MovieHandler struct {
	movieService services.MovieService
}

func NewMovieHandler(movieService services.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

func (mh *MovieHandler) ListMovies(c *gin.Context) {
	movies, err := mh.movieService.ListMovies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (mh *MovieHandler) GetMovie(c *gin.Context) {
	movie, err := mh.movieService.GetMovie(c.Request.Context(), c.Param("movie_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (mh *MovieHandler) AddMovie(c *gin.Context) {
	var movie types.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	created, err := mh.movieService.AddMovie(c.Request.Context(), &movie)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}
