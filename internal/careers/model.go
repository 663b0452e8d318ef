package careers

import (
	"time"

	"cawebsite-backend/internal/utils"
)

const (
	TypeFullTime   = "Full-time"
	TypePartTime   = "Part-time"
	TypeContract   = "Contract"
	TypeInternship = "Internship"

	StatusPending     = "pending"
	StatusReviewed    = "reviewed"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
)

var validTypes = map[string]struct{}{
	TypeFullTime:   {},
	TypePartTime:   {},
	TypeContract:   {},
	TypeInternship: {},
}

var validStatuses = map[string]struct{}{
	StatusPending:     {},
	StatusReviewed:    {},
	StatusShortlisted: {},
	StatusRejected:    {},
}

func IsValidType(value string) bool {
	_, ok := validTypes[value]
	return ok
}

func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

// Career is an open position. Inactive careers stay in the store but are
// hidden from unauthenticated listings.
type Career struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Slug        string    `bson:"slug" json:"slug"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Content     string    `bson:"content" json:"content"`
	Location    string    `bson:"location" json:"location"`
	Department  string    `bson:"department" json:"department"`
	Type        string    `bson:"type" json:"type"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Keywords    []string  `bson:"keywords" json:"keywords"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Application keeps career_title as a snapshot so it stays readable after
// the career is edited or removed. No cascade on career deletion.
type Application struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	CareerID    string    `bson:"career_id" json:"career_id"`
	CareerTitle string    `bson:"career_title" json:"career_title"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	Resume      string    `bson:"resume" json:"resume"`
	CoverLetter string    `bson:"cover_letter,omitempty" json:"cover_letter,omitempty"`
	Experience  string    `bson:"experience,omitempty" json:"experience,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Content     string            `json:"content"`
	Location    string            `json:"location"`
	Department  string            `json:"department"`
	Type        string            `json:"type" validate:"omitempty,oneof=Full-time Part-time Contract Internship"`
	IsActive    *bool             `json:"is_active"`
	Keywords    utils.KeywordList `json:"keywords"`
	ImageURL    string            `json:"image_url"`
}

type UpdateRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Content     *string            `json:"content"`
	Location    *string            `json:"location"`
	Department  *string            `json:"department"`
	Type        *string            `json:"type"`
	IsActive    *bool              `json:"is_active"`
	Keywords    *utils.KeywordList `json:"keywords"`
	ImageURL    *string            `json:"image_url"`
}

type ApplyRequest struct {
	CareerID    string `json:"career_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,phone"`
	Resume      string `json:"resume" validate:"required"`
	CoverLetter string `json:"cover_letter"`
	Experience  string `json:"experience"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed shortlisted rejected"`
}

type ApplicationListFilter struct {
	Status   string
	CareerID string
}
