package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cawebsite-backend/internal/httpx"
	"cawebsite-backend/internal/models"
	"cawebsite-backend/internal/notifications"
	"cawebsite-backend/internal/transport"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// CreateContact stores the enquiry and mails the firm inbox before replying.
// The messaging channel has its own endpoint, see ContactChat.
func (s *Server) CreateContact(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req ContactRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact create: invalid body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := s.Val.Struct(req); err != nil {
		log.Warn("contact create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	msg := models.ContactMessage{
		ID:        primitive.NewObjectID().Hex(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: time.Now().In(s.Cfg.Timezone),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if _, err := s.Cols.ContactMessages.InsertOne(ctx, msg); err != nil {
		log.Error("contact create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	notification := notifications.ContactNotification{
		Name:    msg.Name,
		Email:   msg.Email,
		Phone:   msg.Phone,
		Subject: msg.Subject,
		Message: msg.Message,
	}
	if s.Mailer.MailEnabled() {
		if err := s.Mailer.SendContactNotification(ctx, notification); err != nil {
			log.Error("contact create: notification failed",
				slog.String("contact_id", msg.ID),
				slog.String("error", err.Error()),
			)
			transport.WriteError(w, http.StatusBadGateway, "failed to send notification email", nil)
			return
		}
	}

	log.Info("contact create: stored", slog.String("contact_id", msg.ID))
	transport.WriteJSON(w, http.StatusCreated, msg)
}

// ContactChat pushes the enquiry to the firm's messaging channel. It is a
// best-effort secondary channel: a dead or misconfigured webhook still
// reports success to the caller.
func (s *Server) ContactChat(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req ContactRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("contact chat: invalid body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := s.Val.Struct(req); err != nil {
		log.Warn("contact chat: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if s.Mailer.ChatEnabled() {
		err := s.Mailer.NotifyContactChat(ctx, notifications.ContactNotification{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:   strings.TrimSpace(req.Phone),
			Subject: strings.TrimSpace(req.Subject),
			Message: strings.TrimSpace(req.Message),
		})
		if err != nil {
			log.Warn("contact chat: webhook failed", slog.String("error", err.Error()))
		}
	}

	log.Info("contact chat: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 20, 100)
	if err != nil {
		log.Warn("contact list: invalid pagination")
		transport.WriteError(w, http.StatusBadRequest, "invalid pagination", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := s.Cols.ContactMessages.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("contact list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	items := make([]models.ContactMessage, 0)
	if err := cursor.All(ctx, &items); err != nil {
		log.Error("contact list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	total, err := s.Cols.ContactMessages.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Error("contact list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("contact list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
