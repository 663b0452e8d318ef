package publications

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
	ErrNotFound     = errors.New("publication not found")
	ErrTitleExists  = errors.New("a publication with this title already exists")
	ErrInvalidTitle = errors.New("title does not produce a usable slug")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Publication, error) {
	title := strings.TrimSpace(req.Title)
	slug := utils.Slugify(title)
	if slug == "" {
		return Publication{}, ErrInvalidTitle
	}

	now := time.Now().In(s.location)
	item := Publication{
		ID:          primitive.NewObjectID().Hex(),
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		FileURL:     strings.TrimSpace(req.FileURL),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Keywords:    utils.NormalizeKeywords(req.Keywords),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Publication{}, ErrTitleExists
		}
		return Publication{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Publication, error) {
	id = strings.TrimSpace(id)
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Publication{}, ErrNotFound
		}
		return Publication{}, err
	}

	set := bson.M{"updated_at": time.Now().In(s.location)}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != existing.Title {
			slug := utils.Slugify(title)
			if slug == "" {
				return Publication{}, ErrInvalidTitle
			}
			set["slug"] = slug
		}
		set["title"] = title
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.FileURL != nil {
		set["file_url"] = strings.TrimSpace(*req.FileURL)
	}
	if req.ImageURL != nil {
		set["image_url"] = strings.TrimSpace(*req.ImageURL)
	}
	if req.Keywords != nil {
		set["keywords"] = utils.NormalizeKeywords(*req.Keywords)
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Publication{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Publication{}, ErrTitleExists
		}
		return Publication{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]Publication, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Publication, error) {
	item, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Publication{}, ErrNotFound
		}
		return Publication{}, err
	}
	return item, nil
}
