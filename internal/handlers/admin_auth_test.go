package handlers

import (
	"errors"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestAdminLookupStatusTreatsVanishedAccountAsUnauthorized(t *testing.T) {
	status, msg := adminLookupStatus(mongo.ErrNoDocuments)
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", status, http.StatusUnauthorized)
	}
	if msg != "unauthorized" {
		t.Fatalf("message = %q, want %q", msg, "unauthorized")
	}
}

func TestAdminLookupStatusKeepsStoreFailuresGeneric(t *testing.T) {
	status, msg := adminLookupStatus(errors.New("connection reset"))
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", status, http.StatusInternalServerError)
	}
	if msg != "database error" {
		t.Fatalf("message = %q, want %q", msg, "database error")
	}
}
