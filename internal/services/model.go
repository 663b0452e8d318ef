package services

import (
	"time"

	"cawebsite-backend/internal/utils"
)

// Service is a practice area offered by the firm (audit, taxation, advisory).
type Service struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Slug           string    `bson:"slug" json:"slug"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	ImageURL       string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	FileURL        string    `bson:"file_url,omitempty" json:"file_url,omitempty"`
	SEOTitle       string    `bson:"seo_title" json:"seo_title"`
	SEODescription string    `bson:"seo_description" json:"seo_description"`
	Keywords       []string  `bson:"keywords" json:"keywords"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Title          string            `json:"title" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	SEOTitle       string            `json:"seo_title"`
	SEODescription string            `json:"seo_description"`
	Keywords       utils.KeywordList `json:"keywords"`
	ImageURL       string            `json:"image_url"`
	FileURL        string            `json:"file_url"`
}

// UpdateRequest carries partial-update semantics: nil means "leave as is".
type UpdateRequest struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	SEOTitle       *string            `json:"seo_title"`
	SEODescription *string            `json:"seo_description"`
	Keywords       *utils.KeywordList `json:"keywords"`
	ImageURL       *string            `json:"image_url"`
	FileURL        *string            `json:"file_url"`
}
