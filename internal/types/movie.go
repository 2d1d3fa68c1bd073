package types

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Movie is keyed by its IMDB identifier, not a generated id.
type Movie struct {
	gorm.Model
	ID             string         `gorm:"type:varchar(20);primaryKey" json:"id"`
	Title          string         `gorm:"not null;column:title" json:"title"`
	OriginalTitle  string         `gorm:"column:original_title" json:"original_title"`
	Description    string         `gorm:"type:text;column:description" json:"description"`
	ImageURL       string         `gorm:"column:image_url" json:"image_url"`
	ReleaseDate    *time.Time     `gorm:"column:release_date" json:"release_date"`
	StartYear      *int           `gorm:"column:start_year" json:"start_year"`
	EndYear        *int           `gorm:"column:end_year" json:"end_year"`
	RuntimeMinutes *int           `gorm:"column:runtime_minutes" json:"runtime_minutes"`
	Genres         GenreList      `gorm:"type:jsonb;column:genres" json:"genres"`
	Language       string         `gorm:"column:language" json:"language"`
	Countries      datatypes.JSON `gorm:"column:countries" json:"countries"`
	Rating         *float64       `gorm:"column:rating" json:"rating"`
	NumVotes       *int           `gorm:"column:num_votes" json:"num_votes"`
	Budget         *int64         `gorm:"column:budget" json:"budget"`
	GrossWorldwide *int64         `gorm:"column:gross_worldwide" json:"gross_worldwide"`
	IsAdult        bool           `gorm:"not null;default:false;column:is_adult" json:"is_adult"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Movie) TableName() string {
	return "movie"
}
