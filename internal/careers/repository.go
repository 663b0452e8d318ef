package careers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Career) error
	GetByID(ctx context.Context, id string) (Career, error)
	GetBySlug(ctx context.Context, slug string) (Career, error)
	Update(ctx context.Context, id string, set bson.M) (Career, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, includeInactive bool) ([]Career, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, item Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	Update(ctx context.Context, id string, set bson.M) (Application, error)
	List(ctx context.Context, filter ApplicationListFilter, limit, offset int64) ([]Application, error)
	Count(ctx context.Context, filter ApplicationListFilter) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Career) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Career, error) {
	var item Career
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Career{}, err
	}
	return item, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Career, error) {
	var item Career
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&item); err != nil {
		return Career{}, err
	}
	return item, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Career, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Career
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Career{}, err
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

func (r *MongoRepository) List(ctx context.Context, includeInactive bool) ([]Career, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["is_active"] = true
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Career, 0)
	for cursor.Next(ctx) {
		var item Career
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

type MongoApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(col *mongo.Collection) *MongoApplicationRepository {
	return &MongoApplicationRepository{col: col}
}

func (r *MongoApplicationRepository) Create(ctx context.Context, item Application) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoApplicationRepository) GetByID(ctx context.Context, id string) (Application, error) {
	var item Application
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return Application{}, err
	}
	return item, nil
}

func (r *MongoApplicationRepository) Update(ctx context.Context, id string, set bson.M) (Application, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Application
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Application{}, err
	}
	return updated, nil
}

func (r *MongoApplicationRepository) List(ctx context.Context, filter ApplicationListFilter, limit, offset int64) ([]Application, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, applicationFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Application, 0)
	for cursor.Next(ctx) {
		var item Application
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

func (r *MongoApplicationRepository) Count(ctx context.Context, filter ApplicationListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, applicationFilter(filter))
}

func applicationFilter(f ApplicationListFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CareerID != "" {
		filter["career_id"] = f.CareerID
	}
	return filter
}
