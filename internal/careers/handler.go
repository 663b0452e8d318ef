package careers

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

const listCacheKey = "careers:list"

var (
	errInvalidBody     = errors.New("invalid request body")
	errMissingResume   = errors.New("resume is required")
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

// List serves the public listing of active careers. A verified bearer token
// widens it to include inactive ones; that variant is never cached.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	_, authed := middleware.PrincipalFromContext(r.Context())

	if !authed {
		if cached, ok, err := h.cache.Get(r.Context(), listCacheKey); err == nil && ok {
			log.Info("careers list: cache hit")
			transport.WriteRawJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, authed)
	if err != nil {
		log.Error("careers list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	response := map[string]interface{}{"items": items}
	if !authed {
		if payload, err := json.Marshal(response); err == nil {
			_ = h.cache.Set(r.Context(), listCacheKey, payload, h.cacheTTL)
		}
	}

	log.Info("careers list: ok", slog.Int("count", len(items)), slog.Bool("include_inactive", authed))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("careers get: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("careers get: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "career not found", nil)
			return
		}
		log.Error("careers get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("careers get: ok", slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	req, err := h.decodeApply(ctx, r)
	if err != nil {
		h.writeDecodeError(w, log, "careers apply", err)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("careers apply: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	item, err := h.service.Apply(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			log.Warn("careers apply: career not found", slog.String("career_id", req.CareerID))
			transport.WriteError(w, http.StatusNotFound, "career not found", nil)
		case errors.Is(err, ErrCareerClosed):
			log.Warn("careers apply: career closed", slog.String("career_id", req.CareerID))
			transport.WriteError(w, http.StatusConflict, "career is not accepting applications", nil)
		case errors.Is(err, ErrNotifyFailed):
			log.Error("careers apply: notification failed", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusBadGateway, "failed to send notification email", nil)
		default:
			log.Error("careers apply: database error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		}
		return
	}

	log.Info("careers apply: ok",
		slog.String("application_id", item.ID),
		slog.String("career_id", item.CareerID),
	)
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	req, err := h.decodeCreate(ctx, r)
	if err != nil {
		h.writeDecodeError(w, log, "careers create", err)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("careers create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	item, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeServiceError(w, log, "careers create", err)
		return
	}

	_ = h.cache.Delete(r.Context(), listCacheKey)
	log.Info("careers create: ok", slog.String("career_id", item.ID), slog.String("slug", item.Slug))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("careers update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	req, err := h.decodeUpdate(ctx, r)
	if err != nil {
		h.writeDecodeError(w, log, "careers update", err)
		return
	}

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(w, log, "careers update", err)
		return
	}

	_ = h.cache.Delete(r.Context(), listCacheKey)
	log.Info("careers update: ok", slog.String("career_id", id), slog.String("slug", item.Slug))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("careers delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(w, log, "careers delete", err)
		return
	}

	_ = h.cache.Delete(r.Context(), listCacheKey)
	log.Info("careers delete: ok", slog.String("career_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) AdminListApplications(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 20, 100)
	if err != nil {
		log.Warn("applications list: invalid pagination")
		transport.WriteError(w, http.StatusBadRequest, "invalid pagination", nil)
		return
	}
	filter := ApplicationListFilter{
		Status:   strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))),
		CareerID: strings.TrimSpace(r.URL.Query().Get("career_id")),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.service.ListApplications(ctx, filter, limit, offset)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			log.Warn("applications list: invalid status", slog.String("status", filter.Status))
			transport.WriteError(w, http.StatusBadRequest, "invalid status", nil)
			return
		}
		log.Error("applications list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("applications list: ok", slog.Int("count", len(items)), slog.Int64("total", total))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) AdminUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("application status: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req ApplicationStatusRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("application status: invalid body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		log.Warn("application status: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.UpdateApplicationStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrApplicationNotFound):
			log.Warn("application status: not found", slog.String("application_id", id))
			transport.WriteError(w, http.StatusNotFound, "application not found", nil)
		case errors.Is(err, ErrInvalidStatus):
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"status": "invalid"})
		default:
			log.Error("application status: database error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		}
		return
	}

	log.Info("application status: ok", slog.String("application_id", id), slog.String("status", item.Status))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) decodeApply(ctx context.Context, r *http.Request) (ApplyRequest, error) {
	var req ApplyRequest
	if !httpx.IsMultipart(r) {
		if err := httpx.DecodeJSON(r.Body, &req); err != nil {
			return req, errInvalidBody
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(httpx.MaxUploadBytes); err != nil {
		return req, errInvalidBody
	}
	req.CareerID, _ = httpx.FormValue(r, "career_id")
	req.Name, _ = httpx.FormValue(r, "name")
	req.Email, _ = httpx.FormValue(r, "email")
	req.Phone, _ = httpx.FormValue(r, "phone")
	req.CoverLetter, _ = httpx.FormValue(r, "cover_letter")
	req.Experience, _ = httpx.FormValue(r, "experience")

	url, ok, err := h.uploadFormFile(ctx, r, "resume", "resumes")
	if err != nil {
		return req, err
	}
	if !ok {
		return req, errMissingResume
	}
	req.Resume = url
	return req, nil
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
	req.Location, _ = httpx.FormValue(r, "location")
	req.Department, _ = httpx.FormValue(r, "department")
	req.Type, _ = httpx.FormValue(r, "type")
	if v, ok := httpx.FormValue(r, "is_active"); ok {
		active := parseBool(v)
		req.IsActive = &active
	}
	if kw, ok := httpx.FormValue(r, "keywords"); ok {
		req.Keywords = utils.SplitKeywords(kw)
	}

	if url, ok, err := h.uploadFormFile(ctx, r, "image", "careers"); err != nil {
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
	if v, ok := httpx.FormValue(r, "location"); ok {
		req.Location = &v
	}
	if v, ok := httpx.FormValue(r, "department"); ok {
		req.Department = &v
	}
	if v, ok := httpx.FormValue(r, "type"); ok {
		req.Type = &v
	}
	if v, ok := httpx.FormValue(r, "is_active"); ok {
		active := parseBool(v)
		req.IsActive = &active
	}
	if v, ok := httpx.FormValue(r, "keywords"); ok {
		kw := utils.KeywordList(utils.SplitKeywords(v))
		req.Keywords = &kw
	}

	if url, ok, err := h.uploadFormFile(ctx, r, "image", "careers"); err != nil {
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
	case errors.Is(err, errMissingResume):
		log.Warn(op + ": missing resume")
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"resume": "required"})
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
		transport.WriteError(w, http.StatusNotFound, "career not found", nil)
	case errors.Is(err, ErrTitleExists):
		log.Warn(op + ": duplicate title")
		transport.WriteError(w, http.StatusConflict, "a career with this title already exists", nil)
	case errors.Is(err, ErrInvalidTitle):
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"title": "invalid"})
	case errors.Is(err, ErrInvalidType):
		transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"type": "invalid"})
	default:
		log.Error(op+": database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
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
