package careers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cawebsite-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound            = errors.New("career not found")
	ErrTitleExists         = errors.New("a career with this title already exists")
	ErrInvalidTitle        = errors.New("title does not produce a usable slug")
	ErrInvalidType         = errors.New("invalid employment type")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrCareerClosed        = errors.New("career is not accepting applications")
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotifyFailed        = errors.New("notification failed")
)

type Notifier interface {
	SendApplicationNotification(ctx context.Context, app Application) error
}

type Service struct {
	repo     Repository
	apps     ApplicationRepository
	location *time.Location
	notifier Notifier
}

func NewService(repo Repository, apps ApplicationRepository, location *time.Location, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		apps:     apps,
		location: location,
		notifier: notifier,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Career, error) {
	title := strings.TrimSpace(req.Title)
	slug := utils.Slugify(title)
	if slug == "" {
		return Career{}, ErrInvalidTitle
	}

	careerType := strings.TrimSpace(req.Type)
	if careerType == "" {
		careerType = TypeFullTime
	}
	if !IsValidType(careerType) {
		return Career{}, ErrInvalidType
	}

	// New careers default to visible unless the request says otherwise.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now().In(s.location)
	item := Career{
		ID:          primitive.NewObjectID().Hex(),
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Content:     strings.TrimSpace(req.Content),
		Location:    strings.TrimSpace(req.Location),
		Department:  strings.TrimSpace(req.Department),
		Type:        careerType,
		IsActive:    isActive,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Keywords:    utils.NormalizeKeywords(req.Keywords),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Career{}, ErrTitleExists
		}
		return Career{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Career, error) {
	id = strings.TrimSpace(id)
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Career{}, ErrNotFound
		}
		return Career{}, err
	}

	set := bson.M{"updated_at": time.Now().In(s.location)}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != existing.Title {
			slug := utils.Slugify(title)
			if slug == "" {
				return Career{}, ErrInvalidTitle
			}
			set["slug"] = slug
		}
		set["title"] = title
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Content != nil {
		set["content"] = strings.TrimSpace(*req.Content)
	}
	if req.Location != nil {
		set["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Department != nil {
		set["department"] = strings.TrimSpace(*req.Department)
	}
	if req.Type != nil {
		careerType := strings.TrimSpace(*req.Type)
		if !IsValidType(careerType) {
			return Career{}, ErrInvalidType
		}
		set["type"] = careerType
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
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
			return Career{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Career{}, ErrTitleExists
		}
		return Career{}, err
	}
	return updated, nil
}

// Delete removes the career only. Applications keep their career_title
// snapshot and remain listable afterwards.
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

// List hides inactive careers unless the caller is authenticated.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]Career, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Career, error) {
	item, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Career{}, ErrNotFound
		}
		return Career{}, err
	}
	return item, nil
}

// Apply records an application against an active career. The mail to the
// recruiting inbox is sent before returning, so a broken mailer surfaces
// to the applicant instead of silently losing the lead.
func (s *Service) Apply(ctx context.Context, req ApplyRequest) (Application, error) {
	career, err := s.repo.GetByID(ctx, strings.TrimSpace(req.CareerID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	if !career.IsActive {
		return Application{}, ErrCareerClosed
	}

	now := time.Now().In(s.location)
	item := Application{
		ID:          primitive.NewObjectID().Hex(),
		CareerID:    career.ID,
		CareerTitle: career.Title,
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		Resume:      strings.TrimSpace(req.Resume),
		CoverLetter: strings.TrimSpace(req.CoverLetter),
		Experience:  strings.TrimSpace(req.Experience),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.apps.Create(ctx, item); err != nil {
		return Application{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendApplicationNotification(ctx, item); err != nil {
			return Application{}, fmt.Errorf("%w: %v", ErrNotifyFailed, err)
		}
	}
	return item, nil
}

func (s *Service) ListApplications(ctx context.Context, filter ApplicationListFilter, limit, offset int64) ([]Application, int64, error) {
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}
	items, err := s.apps.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.apps.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) UpdateApplicationStatus(ctx context.Context, id, status string) (Application, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidStatus(status) {
		return Application{}, ErrInvalidStatus
	}

	set := bson.M{
		"status":     status,
		"updated_at": time.Now().In(s.location),
	}
	updated, err := s.apps.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	return updated, nil
}
