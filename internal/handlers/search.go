package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cawebsite-backend/internal/publications"
	"cawebsite-backend/internal/services"
	"cawebsite-backend/internal/transport"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Search matches the query as a literal substring, case-insensitive, against
// title, description and keywords of services and publications. A blank
// query returns empty result sets rather than everything.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	serviceHits := make([]services.Service, 0)
	publicationHits := make([]publications.Publication, 0)
	if q == "" {
		transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"services":     serviceHits,
			"publications": publicationHits,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := searchFilter(q)

	if err := findAll(ctx, s.Cols.Services, filter, &serviceHits); err != nil {
		log.Error("search: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	if err := findAll(ctx, s.Cols.Publications, filter, &publicationHits); err != nil {
		log.Error("search: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("search: ok",
		slog.String("q", q),
		slog.Int("services", len(serviceHits)),
		slog.Int("publications", len(publicationHits)),
	)
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"services":     serviceHits,
		"publications": publicationHits,
	})
}

func searchFilter(q string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	return bson.M{"$or": []bson.M{
		{"title": pattern},
		{"description": pattern},
		{"keywords": pattern},
	}}
}

func findAll(ctx context.Context, col *mongo.Collection, filter bson.M, out interface{}) error {
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
