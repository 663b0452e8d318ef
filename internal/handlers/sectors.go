package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cawebsite-backend/internal/httpx"
	"cawebsite-backend/internal/models"
	"cawebsite-backend/internal/transport"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sectorsCacheKey = "sectors:list"

type SectorCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ImageURL    string `json:"image_url"`
	Order       int    `json:"order"`
}

type SectorUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	ImageURL    *string `json:"image_url"`
	Order       *int    `json:"order"`
}

// ListSectors returns sectors in their manual display order, oldest first
// within the same order value.
func (s *Server) ListSectors(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	if cached, ok, err := s.Cache.Get(r.Context(), sectorsCacheKey); err == nil && ok {
		log.Info("sectors list: cache hit")
		transport.WriteRawJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "created_at", Value: 1},
	})
	cursor, err := s.Cols.Sectors.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("sectors list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	items := make([]models.Sector, 0)
	if err := cursor.All(ctx, &items); err != nil {
		log.Error("sectors list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	response := map[string]interface{}{"items": items}
	if payload, err := json.Marshal(response); err == nil {
		_ = s.Cache.Set(r.Context(), sectorsCacheKey, payload, s.cacheTTL())
	}

	log.Info("sectors list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (s *Server) CreateSector(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	req, err := s.decodeSectorCreate(ctx, r)
	if err != nil {
		s.writeUploadError(w, log, "sector create", err)
		return
	}

	if err := s.Val.Struct(req); err != nil {
		log.Warn("sector create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	now := time.Now().In(s.Cfg.Timezone)
	item := models.Sector{
		ID:          primitive.NewObjectID().Hex(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Icon:        strings.TrimSpace(req.Icon),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Order:       req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.Cols.Sectors.InsertOne(ctx, item); err != nil {
		log.Error("sector create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), sectorsCacheKey)
	log.Info("sector create: ok", slog.String("sector_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (s *Server) UpdateSector(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	req, err := s.decodeSectorUpdate(ctx, r)
	if err != nil {
		s.writeUploadError(w, log, "sector update", err)
		return
	}

	set := bson.M{"updated_at": time.Now().In(s.Cfg.Timezone)}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"title": "required"})
			return
		}
		set["title"] = title
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Icon != nil {
		set["icon"] = strings.TrimSpace(*req.Icon)
	}
	if req.ImageURL != nil {
		set["image_url"] = strings.TrimSpace(*req.ImageURL)
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Sector
	if err := s.Cols.Sectors.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn("sector update: not found", slog.String("sector_id", id))
			transport.WriteError(w, http.StatusNotFound, "sector not found", nil)
			return
		}
		log.Error("sector update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), sectorsCacheKey)
	log.Info("sector update: ok", slog.String("sector_id", id))
	transport.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteSector(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := s.Cols.Sectors.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error("sector delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	if res.DeletedCount == 0 {
		log.Warn("sector delete: not found", slog.String("sector_id", id))
		transport.WriteError(w, http.StatusNotFound, "sector not found", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), sectorsCacheKey)
	log.Info("sector delete: ok", slog.String("sector_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) decodeSectorCreate(ctx context.Context, r *http.Request) (SectorCreateRequest, error) {
	var req SectorCreateRequest
	if !httpx.IsMultipart(r) {
		if err := httpx.DecodeJSON(r.Body, &req); err != nil {
			return req, errInvalidBody
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(httpx.MaxUploadBytes); err != nil {
		return req, errInvalidBody
	}
	req.Title, _ = httpx.FormValue(r, "title")
	req.Description, _ = httpx.FormValue(r, "description")
	req.Icon, _ = httpx.FormValue(r, "icon")
	if v, ok := httpx.FormValue(r, "order"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return req, errInvalidBody
		}
		req.Order = n
	}

	if url, ok, err := s.uploadFormFile(ctx, r, "image", "sectors"); err != nil {
		return req, err
	} else if ok {
		req.ImageURL = url
	}
	return req, nil
}

func (s *Server) decodeSectorUpdate(ctx context.Context, r *http.Request) (SectorUpdateRequest, error) {
	var req SectorUpdateRequest
	if !httpx.IsMultipart(r) {
		if err := httpx.DecodeJSON(r.Body, &req); err != nil {
			return req, errInvalidBody
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(httpx.MaxUploadBytes); err != nil {
		return req, errInvalidBody
	}
	if v, ok := httpx.FormValue(r, "title"); ok {
		req.Title = &v
	}
	if v, ok := httpx.FormValue(r, "description"); ok {
		req.Description = &v
	}
	if v, ok := httpx.FormValue(r, "icon"); ok {
		req.Icon = &v
	}
	if v, ok := httpx.FormValue(r, "order"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return req, errInvalidBody
		}
		req.Order = &n
	}

	if url, ok, err := s.uploadFormFile(ctx, r, "image", "sectors"); err != nil {
		return req, err
	} else if ok {
		req.ImageURL = &url
	}
	return req, nil
}
