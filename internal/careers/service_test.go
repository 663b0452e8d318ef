package careers

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]Career
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Career)}
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func (f *fakeRepo) Create(ctx context.Context, item Career) error {
	for _, existing := range f.items {
		if existing.Slug == item.Slug {
			return duplicateKeyErr()
		}
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Career, error) {
	item, ok := f.items[id]
	if !ok {
		return Career{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (Career, error) {
	for _, item := range f.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return Career{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Career, error) {
	item, ok := f.items[id]
	if !ok {
		return Career{}, mongo.ErrNoDocuments
	}
	if slug, ok := set["slug"].(string); ok {
		for otherID, other := range f.items {
			if otherID != id && other.Slug == slug {
				return Career{}, duplicateKeyErr()
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

func (f *fakeRepo) List(ctx context.Context, includeInactive bool) ([]Career, error) {
	out := make([]Career, 0, len(f.items))
	for _, item := range f.items {
		if !includeInactive && !item.IsActive {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func applySet(item *Career, set bson.M) {
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
		case "location":
			item.Location = v.(string)
		case "department":
			item.Department = v.(string)
		case "type":
			item.Type = v.(string)
		case "is_active":
			item.IsActive = v.(bool)
		case "keywords":
			item.Keywords = v.([]string)
		case "image_url":
			item.ImageURL = v.(string)
		case "updated_at":
			item.UpdatedAt = v.(time.Time)
		}
	}
}

type fakeAppRepo struct {
	items map[string]Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{items: make(map[string]Application)}
}

func (f *fakeAppRepo) Create(ctx context.Context, item Application) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeAppRepo) GetByID(ctx context.Context, id string) (Application, error) {
	item, ok := f.items[id]
	if !ok {
		return Application{}, mongo.ErrNoDocuments
	}
	return item, nil
}

func (f *fakeAppRepo) Update(ctx context.Context, id string, set bson.M) (Application, error) {
	item, ok := f.items[id]
	if !ok {
		return Application{}, mongo.ErrNoDocuments
	}
	if status, ok := set["status"].(string); ok {
		item.Status = status
	}
	if at, ok := set["updated_at"].(time.Time); ok {
		item.UpdatedAt = at
	}
	f.items[id] = item
	return item, nil
}

func (f *fakeAppRepo) List(ctx context.Context, filter ApplicationListFilter, limit, offset int64) ([]Application, error) {
	out := make([]Application, 0, len(f.items))
	for _, item := range f.items {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.CareerID != "" && item.CareerID != filter.CareerID {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeAppRepo) Count(ctx context.Context, filter ApplicationListFilter) (int64, error) {
	items, _ := f.List(ctx, filter, 0, 0)
	return int64(len(items)), nil
}

type fakeNotifier struct {
	sent []Application
	err  error
}

func (f *fakeNotifier) SendApplicationNotification(ctx context.Context, app Application) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, app)
	return nil
}

func testService(repo Repository, apps ApplicationRepository, notifier Notifier) *Service {
	return NewService(repo, apps, time.UTC, notifier)
}

func TestCreateDefaults(t *testing.T) {
	s := testService(newFakeRepo(), newFakeAppRepo(), nil)

	item, err := s.Create(context.Background(), CreateRequest{
		Title:       "Senior Audit Associate",
		Description: "Lead statutory audit engagements.",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.Slug != "senior-audit-associate" {
		t.Fatalf("unexpected slug: %q", item.Slug)
	}
	if item.Type != TypeFullTime {
		t.Fatalf("type not defaulted: %q", item.Type)
	}
	if !item.IsActive {
		t.Fatalf("new career should default to active")
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	s := testService(newFakeRepo(), newFakeAppRepo(), nil)

	_, err := s.Create(context.Background(), CreateRequest{
		Title:       "Tax Intern",
		Description: "d",
		Type:        "Freelance",
	})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestListHidesInactiveFromPublic(t *testing.T) {
	repo := newFakeRepo()
	s := testService(repo, newFakeAppRepo(), nil)

	if _, err := s.Create(context.Background(), CreateRequest{Title: "Open Role", Description: "d"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	inactive := false
	if _, err := s.Create(context.Background(), CreateRequest{Title: "Closed Role", Description: "d", IsActive: &inactive}); err != nil {
		t.Fatalf("create: %v", err)
	}

	public, err := s.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(public) != 1 || public[0].Title != "Open Role" {
		t.Fatalf("public listing should only show active careers: %+v", public)
	}

	admin, err := s.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(admin) != 2 {
		t.Fatalf("admin listing should include inactive careers, got %d", len(admin))
	}
}

func TestApplySnapshotsCareerTitle(t *testing.T) {
	repo := newFakeRepo()
	apps := newFakeAppRepo()
	notifier := &fakeNotifier{}
	s := testService(repo, apps, notifier)

	career, err := s.Create(context.Background(), CreateRequest{Title: "Senior Audit Associate", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	app, err := s.Apply(context.Background(), ApplyRequest{
		CareerID: career.ID,
		Name:     "Priya Sharma",
		Email:    "Priya@Example.com",
		Phone:    "+919876543210",
		Resume:   "https://files.example.com/resumes/priya.pdf",
	})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if app.CareerTitle != "Senior Audit Associate" {
		t.Fatalf("career title not snapshotted: %q", app.CareerTitle)
	}
	if app.Email != "priya@example.com" {
		t.Fatalf("email not lowercased: %q", app.Email)
	}
	if app.Status != StatusPending {
		t.Fatalf("status not pending: %q", app.Status)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.sent))
	}

	// The snapshot must survive both renaming and deleting the career.
	title := "Audit Manager"
	if _, err := s.Update(context.Background(), career.ID, UpdateRequest{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Delete(context.Background(), career.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	stored, err := apps.GetByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("application lost after career delete: %v", err)
	}
	if stored.CareerTitle != "Senior Audit Associate" {
		t.Fatalf("snapshot changed: %q", stored.CareerTitle)
	}
}

func TestApplyToInactiveCareerRejected(t *testing.T) {
	s := testService(newFakeRepo(), newFakeAppRepo(), nil)

	inactive := false
	career, err := s.Create(context.Background(), CreateRequest{Title: "Closed Role", Description: "d", IsActive: &inactive})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = s.Apply(context.Background(), ApplyRequest{
		CareerID: career.ID,
		Name:     "A",
		Email:    "a@example.com",
		Phone:    "+919876543210",
		Resume:   "https://files.example.com/r.pdf",
	})
	if !errors.Is(err, ErrCareerClosed) {
		t.Fatalf("expected ErrCareerClosed, got %v", err)
	}
}

func TestApplyNotifierFailureSurfaces(t *testing.T) {
	apps := newFakeAppRepo()
	s := testService(newFakeRepo(), apps, &fakeNotifier{err: errors.New("smtp down")})

	career, err := s.Create(context.Background(), CreateRequest{Title: "Open Role", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = s.Apply(context.Background(), ApplyRequest{
		CareerID: career.ID,
		Name:     "A",
		Email:    "a@example.com",
		Phone:    "+919876543210",
		Resume:   "https://files.example.com/r.pdf",
	})
	if !errors.Is(err, ErrNotifyFailed) {
		t.Fatalf("expected ErrNotifyFailed, got %v", err)
	}
	// The record itself is kept so the lead is not lost.
	if len(apps.items) != 1 {
		t.Fatalf("application should still be stored, got %d", len(apps.items))
	}
}

func TestUpdateApplicationStatus(t *testing.T) {
	apps := newFakeAppRepo()
	s := testService(newFakeRepo(), apps, nil)

	career, err := s.Create(context.Background(), CreateRequest{Title: "Open Role", Description: "d"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	app, err := s.Apply(context.Background(), ApplyRequest{
		CareerID: career.ID,
		Name:     "A",
		Email:    "a@example.com",
		Phone:    "+919876543210",
		Resume:   "https://files.example.com/r.pdf",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	updated, err := s.UpdateApplicationStatus(context.Background(), app.ID, "Shortlisted")
	if err != nil {
		t.Fatalf("UpdateApplicationStatus error: %v", err)
	}
	if updated.Status != StatusShortlisted {
		t.Fatalf("status not updated: %q", updated.Status)
	}

	if _, err := s.UpdateApplicationStatus(context.Background(), app.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := s.UpdateApplicationStatus(context.Background(), "missing", "reviewed"); !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestListApplicationsRejectsUnknownStatusFilter(t *testing.T) {
	s := testService(newFakeRepo(), newFakeAppRepo(), nil)
	if _, _, err := s.ListApplications(context.Background(), ApplicationListFilter{Status: "archived"}, 20, 0); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
