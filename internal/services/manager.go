package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"cawebsite-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound     = errors.New("service not found")
	ErrTitleExists  = errors.New("a service with this title already exists")
	ErrInvalidTitle = errors.New("title does not produce a usable slug")
)

type Manager struct {
	repo     Repository
	location *time.Location
}

func NewManager(repo Repository, location *time.Location) *Manager {
	return &Manager{
		repo:     repo,
		location: location,
	}
}

func (m *Manager) Create(ctx context.Context, req CreateRequest) (Service, error) {
	title := strings.TrimSpace(req.Title)
	slug := utils.Slugify(title)
	if slug == "" {
		return Service{}, ErrInvalidTitle
	}

	seoTitle := strings.TrimSpace(req.SEOTitle)
	if seoTitle == "" {
		seoTitle = title
	}
	seoDescription := strings.TrimSpace(req.SEODescription)
	if seoDescription == "" {
		seoDescription = strings.TrimSpace(req.Description)
	}

	now := time.Now().In(m.location)
	item := Service{
		ID:             primitive.NewObjectID().Hex(),
		Slug:           slug,
		Title:          title,
		Description:    strings.TrimSpace(req.Description),
		ImageURL:       strings.TrimSpace(req.ImageURL),
		FileURL:        strings.TrimSpace(req.FileURL),
		SEOTitle:       seoTitle,
		SEODescription: seoDescription,
		Keywords:       utils.NormalizeKeywords(req.Keywords),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := m.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Service{}, ErrTitleExists
		}
		return Service{}, err
	}
	return item, nil
}

// Update applies only the supplied fields. A changed title regenerates the
// slug; the old slug is gone immediately, never kept as an alias.
func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (Service, error) {
	id = strings.TrimSpace(id)
	existing, err := m.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}

	set := bson.M{"updated_at": time.Now().In(m.location)}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != existing.Title {
			slug := utils.Slugify(title)
			if slug == "" {
				return Service{}, ErrInvalidTitle
			}
			set["slug"] = slug
		}
		set["title"] = title
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.SEOTitle != nil {
		set["seo_title"] = strings.TrimSpace(*req.SEOTitle)
	}
	if req.SEODescription != nil {
		set["seo_description"] = strings.TrimSpace(*req.SEODescription)
	}
	if req.Keywords != nil {
		set["keywords"] = utils.NormalizeKeywords(*req.Keywords)
	}
	if req.ImageURL != nil {
		set["image_url"] = strings.TrimSpace(*req.ImageURL)
	}
	if req.FileURL != nil {
		set["file_url"] = strings.TrimSpace(*req.FileURL)
	}

	updated, err := m.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Service{}, ErrTitleExists
		}
		return Service{}, err
	}
	return updated, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	deleted, err := m.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) List(ctx context.Context) ([]Service, error) {
	return m.repo.List(ctx)
}

func (m *Manager) GetBySlug(ctx context.Context, slug string) (Service, error) {
	item, err := m.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Service{}, ErrNotFound
		}
		return Service{}, err
	}
	return item, nil
}
