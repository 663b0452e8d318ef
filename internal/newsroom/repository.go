package newsroom

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Article) error
	GetByID(ctx context.Context, id string) (Article, error)
	GetBySlug(ctx context.Context, slug string) (Article, error)
	Update(ctx context.Context, id string, set bson.M) (Article, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]Article, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Article) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Article, error) {
	var item Article
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Article{}, err
	}
	return item, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Article, error) {
	var item Article
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&item); err != nil {
		return Article{}, err
	}
	return item, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Article, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Article
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Article{}, err
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

// List sorts by the editorial date, newest first; created_at breaks ties so
// two posts published the same day keep a stable order.
func (r *MongoRepository) List(ctx context.Context) ([]Article, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "date", Value: -1},
			{Key: "created_at", Value: -1},
		})

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Article, 0)
	for cursor.Next(ctx) {
		var item Article
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
