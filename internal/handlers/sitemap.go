package handlers

import (
	"context"
	"encoding/xml"
	"log/slog"
	"net/http"
	"time"

	"cawebsite-backend/internal/cache"
	"cawebsite-backend/internal/sitemap"
	"cawebsite-backend/internal/transport"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Server) Sitemap(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	if cached, ok, err := s.Cache.Get(r.Context(), cache.SitemapKey); err == nil && ok {
		log.Info("sitemap: cache hit")
		transport.WriteXML(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	serviceSlugs, err := collectSlugs(ctx, s.Cols.Services)
	if err != nil {
		log.Error("sitemap: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	publicationSlugs, err := collectSlugs(ctx, s.Cols.Publications)
	if err != nil {
		log.Error("sitemap: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	set := sitemap.Build(s.Cfg.PublicBaseURL, serviceSlugs, publicationSlugs)
	payload, err := xml.Marshal(set)
	if err != nil {
		log.Error("sitemap: encode error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "encode error", nil)
		return
	}

	body := append([]byte(xml.Header), payload...)
	_ = s.Cache.Set(r.Context(), cache.SitemapKey, body, time.Minute)

	log.Info("sitemap: ok", slog.Int("urls", len(set.URLs)))
	transport.WriteXML(w, http.StatusOK, body)
}

func collectSlugs(ctx context.Context, col *mongo.Collection) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"slug": 1}).
		SetSort(bson.D{{Key: "slug", Value: 1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Slug string `bson:"slug"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Slug != "" {
			slugs = append(slugs, doc.Slug)
		}
	}
	return slugs, nil
}
