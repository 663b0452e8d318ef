package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collections struct {
	Services           *mongo.Collection
	Publications       *mongo.Collection
	Newsroom           *mongo.Collection
	Sectors            *mongo.Collection
	Careers            *mongo.Collection
	CareerApplications *mongo.Collection
	HomepageFiles      *mongo.Collection
	ContactMessages    *mongo.Collection
	Admins             *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)

	cols := &Collections{
		Services:           db.Collection("services"),
		Publications:       db.Collection("publications"),
		Newsroom:           db.Collection("newsroom"),
		Sectors:            db.Collection("sectors"),
		Careers:            db.Collection("careers"),
		CareerApplications: db.Collection("career_applications"),
		HomepageFiles:      db.Collection("homepage_files"),
		ContactMessages:    db.Collection("contact_messages"),
		Admins:             db.Collection("admins"),
	}

	return client, cols, nil
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	uniqueSlug := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	for _, col := range []*mongo.Collection{cols.Services, cols.Publications, cols.Newsroom, cols.Careers} {
		if _, err := col.Indexes().CreateMany(indexTimeout, uniqueSlug); err != nil {
			return err
		}
	}

	_, err := cols.Careers.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "is_active", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.CareerApplications.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "career_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Admins.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	return nil
}
