package publications

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Publication) error
	GetByID(ctx context.Context, id string) (Publication, error)
	GetBySlug(ctx context.Context, slug string) (Publication, error)
	Update(ctx context.Context, id string, set bson.M) (Publication, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]Publication, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Publication) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Publication, error) {
	var item Publication
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Publication{}, err
	}
	return item, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Publication, error) {
	var item Publication
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&item); err != nil {
		return Publication{}, err
	}
	return item, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Publication, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Publication
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Publication{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Publication, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Publication, 0)
	for cursor.Next(ctx) {
		var item Publication
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
