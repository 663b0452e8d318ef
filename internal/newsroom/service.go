package newsroom

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
	ErrNotFound     = errors.New("article not found")
	ErrTitleExists  = errors.New("an article with this title already exists")
	ErrInvalidTitle = errors.New("title does not produce a usable slug")
	ErrInvalidDate  = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

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

func (s *Service) Create(ctx context.Context, req CreateRequest) (Article, error) {
	title := strings.TrimSpace(req.Title)
	slug := utils.Slugify(title)
	if slug == "" {
		return Article{}, ErrInvalidTitle
	}

	now := time.Now().In(s.location)
	date := now
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.Date), s.location)
		if err != nil {
			return Article{}, ErrInvalidDate
		}
		date = parsed
	}

	item := Article{
		ID:          primitive.NewObjectID().Hex(),
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Content:     req.Content,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Date:        date,
		Keywords:    utils.NormalizeKeywords(req.Keywords),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Article{}, ErrTitleExists
		}
		return Article{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Article, error) {
	id = strings.TrimSpace(id)
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Article{}, ErrNotFound
		}
		return Article{}, err
	}

	set := bson.M{"updated_at": time.Now().In(s.location)}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != existing.Title {
			slug := utils.Slugify(title)
			if slug == "" {
				return Article{}, ErrInvalidTitle
			}
			set["slug"] = slug
		}
		set["title"] = title
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Date != nil {
		parsed, err := time.ParseInLocation(dateLayout, strings.TrimSpace(*req.Date), s.location)
		if err != nil {
			return Article{}, ErrInvalidDate
		}
		set["date"] = parsed
	}
	if req.Keywords != nil {
		set["keywords"] = utils.NormalizeKeywords(*req.Keywords)
	}
	if req.ImageURL != nil {
		set["image_url"] = strings.TrimSpace(*req.ImageURL)
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Article{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Article{}, ErrTitleExists
		}
		return Article{}, err
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

func (s *Service) List(ctx context.Context) ([]Article, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Article, error) {
	item, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Article{}, ErrNotFound
		}
		return Article{}, err
	}
	return item, nil
}
