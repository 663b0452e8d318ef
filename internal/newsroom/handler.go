package newsroom

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cawebsite-backend/internal/cache"
	"cawebsite-backend/internal/httpx"
	"cawebsite-backend/internal/middleware"
	"cawebsite-backend/internal/storage"
	"cawebsite-backend/internal/transport"
	"cawebsite-backend/internal/utils"
	"cawebsite-backend/internal/validation"
	"github.com/go-chi/chi/v5"
)

const listCacheKey = "newsroom:list"

var (
	errInvalidBody     = errors.New("invalid request body")
	errStorageDisabled = errors.New("file storage not configured")
)

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
	files    *storage.Store
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache, cacheTTL time.Duration, files *storage.Store) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    c,
		cacheTTL: cacheTTL,
		files:    files,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if cached, ok, err := h.cache.Get(r.Context(), listCacheKey); err == nil && ok {
		log.Info("newsroom list: cache hit")
		transport.WriteRawJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		log.Error("newsroom list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	response := map[string]interface{}{"items": items}
	if payload, err := json.Marshal(response); err == nil {
		_ = h.cache.Set(r.Context(), listCacheKey, payload, h.cacheTTL)
	}

	log.Info("newsroom list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("newsroom get: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("newsroom get: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "article not found", nil)
			return
		}
		log.Error("newsroom get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("newsroom get: ok", slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	req, err := h.decodeCreate(ctx, r)
	if err != nil {
		h.writeDecodeError(w, log, "newsroom create", err)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("newsroom create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	item, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeServiceError(w, log, "newsroom create", err)
		return
	}

	_ = h.cache.Delete(r.Context(), listCacheKey)
	log.Info("newsroom create: ok", slog.String("article_id", item.ID), slog.String("slug", item.Slug))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("newsroom update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	req, err := h.decodeUpdate(ctx, r)
	if err != nil {
		h.writeDecodeError(w, log, "newsroom update", err)
		return
	}

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(w, log, "newsroom update", err)
		return
	}

	_ = h.cache.Delete(r.Context(), listCacheKey)
	log.Info("newsroom update: ok", slog.String("article_id", id), slog.String("slug", item.Slug))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("newsroom delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(w, log, "newsroom delete", err)
		return
	}

	_ = h.cache.Delete(r.Context(), listCacheKey)
	log.Info("newsroom delete: ok", slog.String("article_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) decodeCreate(ctx context.Context, r *http.Request) (CreateRequest, error) {
	var req CreateRequest
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
	req.Content, _ = httpx.FormValue(r, "content")
	req.Date, _ = httpx.FormValue(r, "date")
	if kw, ok := httpx.FormValue(r, "keywords"); ok {
		req.Keywords = utils.SplitKeywords(kw)
	}

	if url, ok, err := h.uploadFormFile(ctx, r, "image", "newsroom"); err != nil {
		return req, err
	} else if ok {
		req.ImageURL = url
	}
	return req, nil
}

func (h *Handler) decodeUpdate(ctx context.Context, r *http.Request) (UpdateRequest, error) {
	var req UpdateRequest
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
	if v, ok := httpx.FormValue(r, "content"); ok {
		req.Content = &v
	}
	if v, ok := httpx.FormValue(r, "date"); ok {
		req.Date = &v
	}
	if v, ok := httpx.FormValue(r, "keywords"); ok {
		kw := utils.KeywordList(utils.SplitKeywords(v))
		req.Keywords = &kw
	}

	if url, ok, err := h.uploadFormFile(ctx, r, "image", "newsroom"); err != nil {
		return req, err
	} else if ok {
		req.ImageURL = &url
	}
	return req, nil
}

func (h *Handler) uploadFormFile(ctx context.Context, r *http.Request, field, folder string) (string, bool, error) {
	file, header, ok, err := httpx.FormFile(r, field)
	if err != nil {
		return "", false, errInvalidBody
	}
	if !ok {
		return "", false, nil
	}
	defer file.Close()

	if h.files == nil {
		return "", false, errStorageDisabled
	}
	url, err := h.files.Upload(ctx, folder, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errInvalidBody):
		log.Warn(op + ": invalid body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
	case errors.Is(err, errStorageDisabled):
		log.Warn(op + ": storage not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "file storage not configured", nil)
	default:
		log.Error(op+": upload error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "upload error", nil)
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		log.Warn(op + ": not found")
		transport.WriteError(w, http.StatusNotFound, "article not found", nil)
	case errors.Is(err, ErrTitleExists):
		log.Warn(op + ": duplicate title")
		transport.WriteError(w, http.StatusConflict, "an article with this title already exists", nil)
	case errors.Is(err, ErrInvalidTitle):
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"title": "invalid"})
	case errors.Is(err, ErrInvalidDate):
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"date": "invalid"})
	default:
		log.Error(op+": database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
	}
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
