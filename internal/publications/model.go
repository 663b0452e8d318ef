package publications

import (
	"time"

	"cawebsite-backend/internal/utils"
)

// Publication is a downloadable firm document (budget notes, circulars,
// technical guides). A publication without an attached file is invalid.
type Publication struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Slug        string    `bson:"slug" json:"slug"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	FileURL     string    `bson:"file_url" json:"file_url"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Keywords    []string  `bson:"keywords" json:"keywords"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	FileURL     string            `json:"file_url" validate:"required"`
	ImageURL    string            `json:"image_url"`
	Keywords    utils.KeywordList `json:"keywords"`
}

type UpdateRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	FileURL     *string            `json:"file_url"`
	ImageURL    *string            `json:"image_url"`
	Keywords    *utils.KeywordList `json:"keywords"`
}
