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

// CreateCentro inserts a new production site.
func (r *MongoDBRepository) CreateCentro(ctx context.Context, centro models.Centro) (models.Centro, error) {
	now := time.Now().UTC()
	centro.ID = uuid.NewString()
	centro.CreatedAt = now
	centro.UpdatedAt = now
	if _, err := r.collection(collCentros).InsertOne(ctx, centro); err != nil {
		return models.Centro{}, fmt.Errorf("failed to insert centro: %w", err)
	}
	return centro, nil
}

// GetCentros returns every production site ordered by name.
func (r *MongoDBRepository) GetCentros(ctx context.Context) ([]models.Centro, error) {
	opts := options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}})
	cursor, err := r.collection(collCentros).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list centros: %w", err)
	}
	defer cursor.Close(ctx)

	var centros []models.Centro
	if err := cursor.All(ctx, &centros); err != nil {
		return nil, fmt.Errorf("failed to decode centros: %w", err)
	}
	return centros, nil
}

// GetCentroPorID returns one site by id, or nil when absent.
func (r *MongoDBRepository) GetCentroPorID(ctx context.Context, id string) (*models.Centro, error) {
	var centro models.Centro
	err := r.collection(collCentros).FindOne(ctx, bson.M{"_id": id}).Decode(&centro)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load centro %s: %w", id, err)
	}
	return &centro, nil
}

// UpdateCentro overwrites one site in place.
func (r *MongoDBRepository) UpdateCentro(ctx context.Context, centro models.Centro) error {
	centro.UpdatedAt = time.Now().UTC()
	result, err := r.collection(collCentros).ReplaceOne(ctx, bson.M{"_id": centro.ID}, centro)
	if err != nil {
		return fmt.Errorf("failed to update centro %s: %w", centro.ID, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteCentro removes one site.
func (r *MongoDBRepository) DeleteCentro(ctx context.Context, id string) error {
	result, err := r.collection(collCentros).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete centro %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
