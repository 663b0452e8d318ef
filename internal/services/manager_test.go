package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]Service
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Service)}
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (f *fakeRepo) Create(ctx context.Context, item Service) error {
	for _, existing := range f.items {
		if existing.Slug == item.Slug {
			return duplicateKeyErr()
		}
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Service, error) {
	item, ok := f.items[id]
	if !ok {
		return Service{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (Service, error) {
	for _, item := range f.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return Service{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Service, error) {
	item, ok := f.items[id]
	if !ok {
		return Service{}, mongo.ErrNoDocuments
	}
	if slug, ok := set["slug"].(string); ok {
		for otherID, other := range f.items {
			if otherID != id && other.Slug == slug {
				return Service{}, duplicateKeyErr()
			}
		}
	}
	applySet(&item, set)
	f.items[id] = item
	return item, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.items[id]; !ok {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]Service, error) {
	out := make([]Service, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func applySet(item *Service, set bson.M) {
	for k, v := range set {
		switch k {
		case "slug":
			item.Slug = v.(string)
		case "title":
			item.Title = v.(string)
		case "description":
			item.Description = v.(string)
		case "seo_title":
			item.SEOTitle = v.(string)
		case "seo_description":
			item.SEODescription = v.(string)
		case "keywords":
			item.Keywords = v.([]string)
		case "image_url":
			item.ImageURL = v.(string)
		case "file_url":
			item.FileURL = v.(string)
		case "updated_at":
			item.UpdatedAt = v.(time.Time)
		}
	}
}

func testManager(repo Repository) *Manager {
	return NewManager(repo, time.UTC)
}

func TestCreateDerivesSlugAndSEODefaults(t *testing.T) {
	m := testManager(newFakeRepo())

	item, err := m.Create(context.Background(), CreateRequest{
		Title:       "Audit & Assurance Services",
		Description: "Statutory and internal audits.",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.Slug != "audit-assurance-services" {
		t.Fatalf("unexpected slug: %q", item.Slug)
	}
	if item.SEOTitle != "Audit & Assurance Services" {
		t.Fatalf("seo title not defaulted: %q", item.SEOTitle)
	}
	if item.SEODescription != "Statutory and internal audits." {
		t.Fatalf("seo description not defaulted: %q", item.SEODescription)
	}
	if item.CreatedAt.IsZero() || !item.UpdatedAt.Equal(item.CreatedAt) {
		t.Fatalf("timestamps not set at create: %v / %v", item.CreatedAt, item.UpdatedAt)
	}
}

func TestCreateDuplicateSlugRejected(t *testing.T) {
	repo := newFakeRepo()
	m := testManager(repo)

	if _, err := m.Create(context.Background(), CreateRequest{Title: "Audit & Assurance Services", Description: "d"}); err != nil {
		t.Fatalf("first create error: %v", err)
	}
	_, err := m.Create(context.Background(), CreateRequest{Title: "Audit and Assurance Services!", Description: "d"})
	if !errors.Is(err, ErrTitleExists) {
		t.Fatalf("expected ErrTitleExists, got %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected exactly one stored service, got %d", len(repo.items))
	}
}

func TestUpdatePartialPreservesOmittedFields(t *testing.T) {
	m := testManager(newFakeRepo())

	created, err := m.Create(context.Background(), CreateRequest{
		Title:       "GST Advisory",
		Description: "old text",
		Keywords:    []string{"gst", "tax"},
		FileURL:     "https://files.example.com/gst.pdf",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	desc := "new text"
	updated, err := m.Update(context.Background(), created.ID, UpdateRequest{Description: &desc})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Description != "new text" {
		t.Fatalf("description not updated: %q", updated.Description)
	}
	if updated.Title != created.Title || updated.Slug != created.Slug || updated.FileURL != created.FileURL {
		t.Fatalf("omitted fields changed: %+v", updated)
	}
	if len(updated.Keywords) != 2 {
		t.Fatalf("keywords changed: %v", updated.Keywords)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("updated_at went backwards")
	}
}

func TestUpdateTitleRegeneratesSlug(t *testing.T) {
	m := testManager(newFakeRepo())

	created, err := m.Create(context.Background(), CreateRequest{Title: "GST Advisory", Description: "d"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	title := "Indirect Tax Advisory"
	updated, err := m.Update(context.Background(), created.ID, UpdateRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Slug != "indirect-tax-advisory" {
		t.Fatalf("slug not regenerated: %q", updated.Slug)
	}
}

func TestUpdateSlugCollisionRejected(t *testing.T) {
	m := testManager(newFakeRepo())

	if _, err := m.Create(context.Background(), CreateRequest{Title: "Direct Tax", Description: "d"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := m.Create(context.Background(), CreateRequest{Title: "Company Law", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Direct Tax"
	_, err = m.Update(context.Background(), second.ID, UpdateRequest{Title: &title})
	if !errors.Is(err, ErrTitleExists) {
		t.Fatalf("expected ErrTitleExists, got %v", err)
	}
}

func TestUpdateMissingIDNotFound(t *testing.T) {
	m := testManager(newFakeRepo())
	desc := "x"
	if _, err := m.Update(context.Background(), "missing", UpdateRequest{Description: &desc}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissingIDNotFound(t *testing.T) {
	m := testManager(newFakeRepo())
	if err := m.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetBySlugNotFound(t *testing.T) {
	m := testManager(newFakeRepo())
	if _, err := m.GetBySlug(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
