package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cawebsite-backend/internal/auth"
	"cawebsite-backend/internal/httpx"
	"cawebsite-backend/internal/middleware"
	"cawebsite-backend/internal/models"
	"cawebsite-backend/internal/transport"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminRegisterRequest struct {
	SetupKey string `json:"setup_key" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string       `json:"token"`
	Admin models.Admin `json:"admin"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AdminRegister creates an admin account. It is gated by a deployment-level
// setup key rather than an existing session, so the first account can be
// created on a fresh install.
func (s *Server) AdminRegister(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminRegisterRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin register: invalid body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin register: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	if s.Cfg.AdminSetupKey == "" {
		log.Warn("admin register: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin registration not configured", nil)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.SetupKey), []byte(s.Cfg.AdminSetupKey)) != 1 {
		log.Warn("admin register: bad setup key")
		transport.WriteError(w, http.StatusUnauthorized, "invalid setup key", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("admin register: hash error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	now := time.Now().In(s.Cfg.Timezone)
	admin := models.Admin{
		ID:           primitive.NewObjectID().Hex(),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.Cols.Admins.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn("admin register: duplicate", slog.String("username", admin.Username))
			transport.WriteError(w, http.StatusConflict, "username or email already taken", nil)
			return
		}
		log.Error("admin register: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin register: ok", slog.String("admin_id", admin.ID))
	transport.WriteJSON(w, http.StatusCreated, admin)
}

// AdminLogin accepts the username field as either username or email and
// answers invalid credentials uniformly, without hinting which part failed.
func (s *Server) AdminLogin(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req AdminLoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin login: invalid body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	login := strings.ToLower(strings.TrimSpace(req.Username))
	var admin models.Admin
	err := s.Cols.Admins.FindOne(ctx, bson.M{"$or": []bson.M{
		{"username": login},
		{"email": login},
	}}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn("admin login: invalid credentials", slog.String("username", login))
			transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		log.Error("admin login: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if err := auth.ComparePassword(admin.PasswordHash, req.Password); err != nil {
		log.Warn("admin login: invalid credentials", slog.String("username", login))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := s.JWT.NewToken(admin.ID, admin.Email)
	if err != nil {
		log.Error("admin login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("admin login: ok", slog.String("admin_id", admin.ID))
	transport.WriteJSON(w, http.StatusOK, AdminLoginResponse{Token: token, Admin: admin})
}

func (s *Server) AdminMe(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	if err := s.Cols.Admins.FindOne(ctx, bson.M{"_id": principal.AdminID}).Decode(&admin); err != nil {
		status, msg := adminLookupStatus(err)
		if status == http.StatusUnauthorized {
			log.Warn("admin me: account gone", slog.String("admin_id", principal.AdminID))
		} else {
			log.Error("admin me: database error", slog.String("error", err.Error()))
		}
		transport.WriteError(w, status, msg, nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, admin)
}

func (s *Server) AdminChangePassword(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req ChangePasswordRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin change password: invalid body")
		transport.WriteError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin change password: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(s.Val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	if err := s.Cols.Admins.FindOne(ctx, bson.M{"_id": principal.AdminID}).Decode(&admin); err != nil {
		status, msg := adminLookupStatus(err)
		if status == http.StatusUnauthorized {
			log.Warn("admin change password: account gone", slog.String("admin_id", principal.AdminID))
		} else {
			log.Error("admin change password: lookup error", slog.String("error", err.Error()))
		}
		transport.WriteError(w, status, msg, nil)
		return
	}

	if err := auth.ComparePassword(admin.PasswordHash, req.CurrentPassword); err != nil {
		log.Warn("admin change password: wrong current password", slog.String("admin_id", admin.ID))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Error("admin change password: hash error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	_, err = s.Cols.Admins.UpdateOne(ctx, bson.M{"_id": admin.ID}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().In(s.Cfg.Timezone),
	}})
	if err != nil {
		log.Error("admin change password: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin change password: ok", slog.String("admin_id", admin.ID))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// adminLookupStatus maps a failed admin-by-id lookup on endpoints that
// already hold a verified principal. A vanished account means the token no
// longer identifies anyone, which is an auth failure, not a server error.
func adminLookupStatus(err error) (int, string) {
	if err == mongo.ErrNoDocuments {
		return http.StatusUnauthorized, "unauthorized"
	}
	return http.StatusInternalServerError, "database error"
}
