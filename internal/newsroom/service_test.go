package newsroom

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]Article
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Article)}
}

func (f *fakeRepo) Create(ctx context.Context, item Article) error {
	for _, existing := range f.items {
		if existing.Slug == item.Slug {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Article, error) {
	item, ok := f.items[id]
	if !ok {
		return Article{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (Article, error) {
	for _, item := range f.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return Article{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Article, error) {
	item, ok := f.items[id]
	if !ok {
		return Article{}, mongo.ErrNoDocuments
	}
	for k, v := range set {
		switch k {
		case "slug":
			item.Slug = v.(string)
		case "title":
			item.Title = v.(string)
		case "description":
			item.Description = v.(string)
		case "content":
			item.Content = v.(string)
		case "date":
			item.Date = v.(time.Time)
		case "keywords":
			item.Keywords = v.([]string)
		case "image_url":
			item.ImageURL = v.(string)
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

func (f *fakeRepo) List(ctx context.Context) ([]Article, error) {
	out := make([]Article, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func TestCreateBackdatedArticle(t *testing.T) {
	s := NewService(newFakeRepo(), time.UTC)

	item, err := s.Create(context.Background(), CreateRequest{
		Title:       "New Partner Announcement",
		Description: "The firm welcomes a new partner.",
		Date:        "2024-04-01",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	want := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if !item.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", item.Date, want)
	}
	if item.Date.Equal(item.CreatedAt) {
		t.Fatalf("editorial date should be independent of created_at")
	}
}

func TestCreateDefaultsDateToNow(t *testing.T) {
	s := NewService(newFakeRepo(), time.UTC)

	item, err := s.Create(context.Background(), CreateRequest{
		Title:       "Office Relocation",
		Description: "d",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !item.Date.Equal(item.CreatedAt) {
		t.Fatalf("date should default to created_at, got %v vs %v", item.Date, item.CreatedAt)
	}
}

func TestCreateRejectsBadDate(t *testing.T) {
	s := NewService(newFakeRepo(), time.UTC)
	_, err := s.Create(context.Background(), CreateRequest{Title: "t", Description: "d", Date: "01/04/2024"})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestUpdateDateOnly(t *testing.T) {
	s := NewService(newFakeRepo(), time.UTC)

	created, err := s.Create(context.Background(), CreateRequest{
		Title:       "New Partner Announcement",
		Description: "d",
		Content:     "body",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	date := "2023-12-25"
	updated, err := s.Update(context.Background(), created.ID, UpdateRequest{Date: &date})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != created.Title || updated.Content != created.Content || updated.Slug != created.Slug {
		t.Fatalf("omitted fields changed: %+v", updated)
	}
	want := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	if !updated.Date.Equal(want) {
		t.Fatalf("date = %v, want %v", updated.Date, want)
	}
}
