package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// CreateLote inserts a new lot.
func (r *MongoDBRepository) CreateLote(ctx context.Context, lote models.Lote) (models.Lote, error) {
	now := time.Now().UTC()
	lote.ID = uuid.NewString()
	lote.CreatedAt = now
	lote.UpdatedAt = now
	if _, err := r.collection(collLotes).InsertOne(ctx, lote); err != nil {
		return models.Lote{}, fmt.Errorf("failed to insert lote: %w", err)
	}
	return lote, nil
}

// GetLotes returns every lot, newest first.
func (r *MongoDBRepository) GetLotes(ctx context.Context) ([]models.Lote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(collLotes).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list lotes: %w", err)
	}
	defer cursor.Close(ctx)

	var lotes []models.Lote
	if err := cursor.All(ctx, &lotes); err != nil {
		return nil, fmt.Errorf("failed to decode lotes: %w", err)
	}
	return lotes, nil
}

// GetLotePorID returns one lot by id, or nil when absent.
func (r *MongoDBRepository) GetLotePorID(ctx context.Context, id string) (*models.Lote, error) {
	var lote models.Lote
	err := r.collection(collLotes).FindOne(ctx, bson.M{"_id": id}).Decode(&lote)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lote %s: %w", id, err)
	}
	return &lote, nil
}

// UpdateLote overwrites one lot in place.
func (r *MongoDBRepository) UpdateLote(ctx context.Context, lote models.Lote) error {
	lote.UpdatedAt = time.Now().UTC()
	result, err := r.collection(collLotes).ReplaceOne(ctx, bson.M{"_id": lote.ID}, lote)
	if err != nil {
		return fmt.Errorf("failed to update lote %s: %w", lote.ID, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteLote removes one lot.
func (r *MongoDBRepository) DeleteLote(ctx context.Context, id string) error {
	result, err := r.collection(collLotes).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete lote %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
