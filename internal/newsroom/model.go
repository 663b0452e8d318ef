package newsroom

import (
	"time"

	"cawebsite-backend/internal/utils"
)

// Article is a newsroom post. Date is the displayed publication date chosen
// by the editor and may be backdated; it is not the insert timestamp.
type Article struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Slug        string    `bson:"slug" json:"slug"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Content     string    `bson:"content" json:"content"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Date        time.Time `bson:"date" json:"date"`
	Keywords    []string  `bson:"keywords" json:"keywords"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Content     string            `json:"content"`
	Date        string            `json:"date" validate:"omitempty,date"`
	Keywords    utils.KeywordList `json:"keywords"`
	ImageURL    string            `json:"image_url"`
}

type UpdateRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Content     *string            `json:"content"`
	Date        *string            `json:"date"`
	Keywords    *utils.KeywordList `json:"keywords"`
	ImageURL    *string            `json:"image_url"`
}
