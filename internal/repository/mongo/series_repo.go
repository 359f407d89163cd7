package mongo

import (
	"context"
	"fmt"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const seriesCollectionName = "workout_series"

// mongoSeriesRepository implements repository.SeriesRepository. Documents use
// the series id as _id and always carry ownerId, which every write filters on.
type mongoSeriesRepository struct {
	collection *mongo.Collection
}

func NewMongoSeriesRepository(db *mongo.Database) repository.SeriesRepository {
	return &mongoSeriesRepository{
		collection: db.Collection(seriesCollectionName),
	}
}

// Upsert replaces the document with the same _id and ownerId, inserting it if
// missing. An _id owned by somebody else surfaces as a duplicate key error.
func (r *mongoSeriesRepository) Upsert(ctx context.Context, rec domain.SeriesRecord) error {
	filter := bson.M{"_id": rec.ID, "ownerId": rec.OwnerID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, filter, rec, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("series %s: %w", rec.ID, repository.ErrDuplicate)
		}
		return err
	}
	return nil
}

// Delete removes a series, ensuring it belongs to the owner.
func (r *mongoSeriesRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter := bson.M{"_id": id, "ownerId": ownerID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoSeriesRepository) ListAll(ctx context.Context) ([]domain.SeriesRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.SeriesRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureSeriesIndexes creates the owner index used by the owner filter on
// every write and by the sorted startup load.
func EnsureSeriesIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
