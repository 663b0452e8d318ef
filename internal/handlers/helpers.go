package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"cawebsite-backend/internal/httpx"
	"cawebsite-backend/internal/transport"
)

var (
	errInvalidBody     = errors.New("invalid request body")
	errStorageDisabled = errors.New("file storage not configured")
)

func (s *Server) uploadFormFile(ctx context.Context, r *http.Request, field, folder string) (string, bool, error) {
	file, header, ok, err := httpx.FormFile(r, field)
	if err != nil {
		return "", false, errInvalidBody
	}
	if !ok {
		return "", false, nil
	}
	defer file.Close()

	if s.Files == nil {
		return "", false, errStorageDisabled
	}
	url, err := s.Files.Upload(ctx, folder, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func (s *Server) writeUploadError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
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
