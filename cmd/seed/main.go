package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"cawebsite-backend/internal/auth"
	"cawebsite-backend/internal/config"
	"cawebsite-backend/internal/db"
	"cawebsite-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedService struct {
	Title       string
	Description string
	Keywords    []string
}

type seedSector struct {
	Title       string
	Description string
	Icon        string
	Order       int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	services := []seedService{
		{Title: "Audit & Assurance Services", Description: "Statutory, internal and management audits under the Companies Act.", Keywords: []string{"audit", "assurance", "statutory audit"}},
		{Title: "Direct Tax Advisory", Description: "Income tax planning, assessments and representation.", Keywords: []string{"income tax", "tax planning"}},
		{Title: "GST Advisory", Description: "GST registration, returns, refunds and departmental audits.", Keywords: []string{"gst", "indirect tax"}},
		{Title: "Company Law & Secretarial", Description: "Incorporations, ROC filings and corporate governance support.", Keywords: []string{"roc", "mca", "compliance"}},
		{Title: "Accounting & Outsourcing", Description: "Bookkeeping, payroll and virtual CFO services.", Keywords: []string{"bookkeeping", "payroll", "cfo"}},
	}

	for _, svc := range services {
		slug := utils.Slugify(svc.Title)
		now := time.Now().In(cfg.Timezone)
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":             primitive.NewObjectID().Hex(),
				"slug":            slug,
				"title":           svc.Title,
				"description":     svc.Description,
				"seo_title":       svc.Title,
				"seo_description": svc.Description,
				"keywords":        svc.Keywords,
				"image_url":       "",
				"file_url":        "",
				"created_at":      now,
				"updated_at":      now,
			},
		}
		if _, err := cols.Services.UpdateOne(ctx, bson.M{"slug": slug}, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for %s: %v", svc.Title, err)
		}
	}

	sectors := []seedSector{
		{Title: "Manufacturing", Description: "Engineering, auto components and process industries.", Icon: "factory", Order: 1},
		{Title: "Real Estate & Construction", Description: "Developers, contractors and RERA compliance.", Icon: "building", Order: 2},
		{Title: "Information Technology", Description: "Software services, SaaS and startups.", Icon: "cpu", Order: 3},
		{Title: "Healthcare", Description: "Hospitals, clinics and diagnostics chains.", Icon: "heart-pulse", Order: 4},
		{Title: "Not for Profit", Description: "Trusts, societies and section 8 companies.", Icon: "hand-heart", Order: 5},
	}

	for _, sec := range sectors {
		now := time.Now().In(cfg.Timezone)
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":         primitive.NewObjectID().Hex(),
				"title":       sec.Title,
				"description": sec.Description,
				"icon":        sec.Icon,
				"image_url":   "",
				"order":       sec.Order,
				"created_at":  now,
				"updated_at":  now,
			},
		}
		if _, err := cols.Sectors.UpdateOne(ctx, bson.M{"title": sec.Title}, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for %s: %v", sec.Title, err)
		}
	}

	if err := seedAdmin(ctx, cols, cfg.Timezone); err != nil {
		log.Fatalf("seed admin error: %v", err)
	}

	log.Println("seed completed")
}

// seedAdmin creates the first admin account from ADMIN_USER / ADMIN_EMAIL /
// ADMIN_PASSWORD. Skipped silently when the password is not set.
func seedAdmin(ctx context.Context, cols *db.Collections, loc *time.Location) error {
	username := strings.ToLower(envOrDefault("ADMIN_USER", "admin"))
	email := strings.ToLower(envOrDefault("ADMIN_EMAIL", ""))
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("seed admin: ADMIN_PASSWORD missing, skipping")
		return nil
	}
	if email == "" {
		email = username + "@localhost"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().In(loc)
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":           primitive.NewObjectID().Hex(),
			"username":      username,
			"email":         email,
			"password_hash": hash,
			"created_at":    now,
			"updated_at":    now,
		},
	}
	_, err = cols.Admins.UpdateOne(ctx, bson.M{"username": username}, update, options.Update().SetUpsert(true))
	return err
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
