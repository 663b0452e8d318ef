package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
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

const homepageFilesCacheKey = "homepage_files:list"

type HomepageFileCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	FileURL     string `json:"file_url" validate:"required"`
	FileName    string `json:"file_name"`
}

type HomepageFileUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	FileURL     *string `json:"file_url"`
	FileName    *string `json:"file_name"`
}

func (s *Server) ListHomepageFiles(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	if cached, ok, err := s.Cache.Get(r.Context(), homepageFilesCacheKey); err == nil && ok {
		log.Info("homepage files list: cache hit")
		transport.WriteRawJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.Cols.HomepageFiles.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("homepage files list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	items := make([]models.HomepageFile, 0)
	if err := cursor.All(ctx, &items); err != nil {
		log.Error("homepage files list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	response := map[string]interface{}{"items": items}
	if payload, err := json.Marshal(response); err == nil {
		_ = s.Cache.Set(r.Context(), homepageFilesCacheKey, payload, s.cacheTTL())
	}

	log.Info("homepage files list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (s *Server) CreateHomepageFile(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	req, err := s.decodeHomepageFileCreate(ctx, r)
	if err != nil {
		s.writeUploadError(w, log, "homepage file create", err)
		return
	}

	if err := s.Val.Struct(req); err != nil {
		log.Warn("homepage file create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	now := time.Now().In(s.Cfg.Timezone)
	item := models.HomepageFile{
		ID:          primitive.NewObjectID().Hex(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		FileURL:     strings.TrimSpace(req.FileURL),
		FileName:    strings.TrimSpace(req.FileName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.Cols.HomepageFiles.InsertOne(ctx, item); err != nil {
		log.Error("homepage file create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), homepageFilesCacheKey)
	log.Info("homepage file create: ok", slog.String("file_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (s *Server) UpdateHomepageFile(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	req, err := s.decodeHomepageFileUpdate(ctx, r)
	if err != nil {
		s.writeUploadError(w, log, "homepage file update", err)
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
	if req.FileURL != nil {
		set["file_url"] = strings.TrimSpace(*req.FileURL)
	}
	if req.FileName != nil {
		set["file_name"] = strings.TrimSpace(*req.FileName)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.HomepageFile
	if err := s.Cols.HomepageFiles.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn("homepage file update: not found", slog.String("file_id", id))
			transport.WriteError(w, http.StatusNotFound, "file not found", nil)
			return
		}
		log.Error("homepage file update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), homepageFilesCacheKey)
	log.Info("homepage file update: ok", slog.String("file_id", id))
	transport.WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteHomepageFile(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := s.Cols.HomepageFiles.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Error("homepage file delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	if res.DeletedCount == 0 {
		log.Warn("homepage file delete: not found", slog.String("file_id", id))
		transport.WriteError(w, http.StatusNotFound, "file not found", nil)
		return
	}

	_ = s.Cache.Delete(r.Context(), homepageFilesCacheKey)
	log.Info("homepage file delete: ok", slog.String("file_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) decodeHomepageFileCreate(ctx context.Context, r *http.Request) (HomepageFileCreateRequest, error) {
	var req HomepageFileCreateRequest
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

	file, header, ok, err := httpx.FormFile(r, "file")
	if err != nil {
		return req, errInvalidBody
	}
	if ok {
		defer file.Close()
		if s.Files == nil {
			return req, errStorageDisabled
		}
		url, err := s.Files.Upload(ctx, "homepage", header.Filename, file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			return req, err
		}
		req.FileURL = url
		req.FileName = header.Filename
	}
	return req, nil
}

func (s *Server) decodeHomepageFileUpdate(ctx context.Context, r *http.Request) (HomepageFileUpdateRequest, error) {
	var req HomepageFileUpdateRequest
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

	file, header, ok, err := httpx.FormFile(r, "file")
	if err != nil {
		return req, errInvalidBody
	}
	if ok {
		defer file.Close()
		if s.Files == nil {
			return req, errStorageDisabled
		}
		url, err := s.Files.Upload(ctx, "homepage", header.Filename, file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			return req, err
		}
		req.FileURL = &url
		name := header.Filename
		req.FileName = &name
	}
	return req, nil
}
