package publications

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]Publication
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Publication)}
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (f *fakeRepo) Create(ctx context.Context, item Publication) error {
	for _, existing := range f.items {
		if existing.Slug == item.Slug {
			return duplicateKeyErr()
		}
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Publication, error) {
	item, ok := f.items[id]
	if !ok {
		return Publication{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (Publication, error) {
	for _, item := range f.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return Publication{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Publication, error) {
	item, ok := f.items[id]
	if !ok {
		return Publication{}, mongo.ErrNoDocuments
	}
	for k, v := range set {
		switch k {
		case "slug":
			item.Slug = v.(string)
		case "title":
			item.Title = v.(string)
		case "description":
			item.Description = v.(string)
		case "file_url":
			item.FileURL = v.(string)
		case "image_url":
			item.ImageURL = v.(string)
		case "keywords":
			item.Keywords = v.([]string)
		case "updated_at":
			item.UpdatedAt = v.(time.Time)
		}
	}
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

func (f *fakeRepo) List(ctx context.Context) ([]Publication, error) {
	out := make([]Publication, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func TestCreateKeepsFileURL(t *testing.T) {
	s := NewService(newFakeRepo(), time.UTC)

	item, err := s.Create(context.Background(), CreateRequest{
		Title:       "Union Budget Highlights 2026",
		Description: "Key direct and indirect tax proposals.",
		FileURL:     "https://files.example.com/budget-2026.pdf",
		Keywords:    []string{"budget", "tax"},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.Slug != "union-budget-highlights-2026" {
		t.Fatalf("unexpected slug: %q", item.Slug)
	}
	if item.FileURL != "https://files.example.com/budget-2026.pdf" {
		t.Fatalf("file url lost: %q", item.FileURL)
	}
}

func TestUpdateDescriptionOnly(t *testing.T) {
	s := NewService(newFakeRepo(), time.UTC)

	created, err := s.Create(context.Background(), CreateRequest{
		Title:       "Union Budget Highlights 2026",
		Description: "old text",
		FileURL:     "https://files.example.com/budget-2026.pdf",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	desc := "new text"
	updated, err := s.Update(context.Background(), created.ID, UpdateRequest{Description: &desc})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != created.Title || updated.Slug != created.Slug || updated.FileURL != created.FileURL {
		t.Fatalf("omitted fields changed: %+v", updated)
	}
	if updated.Description != "new text" {
		t.Fatalf("description not updated: %q", updated.Description)
	}
}

func TestDuplicateTitleRejected(t *testing.T) {
	s := NewService(newFakeRepo(), time.UTC)

	req := CreateRequest{Title: "Tax Audit Checklist", Description: "d", FileURL: "https://f/x.pdf"}
	if _, err := s.Create(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(context.Background(), req); !errors.Is(err, ErrTitleExists) {
		t.Fatalf("expected ErrTitleExists, got %v", err)
	}
}
