package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// LogActividad appends one activity entry.
func (r *MongoDBRepository) LogActividad(ctx context.Context, entrada models.ActividadLog) error {
	entrada.ID = uuid.NewString()
	if entrada.CreatedAt.IsZero() {
		entrada.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection(collActividad).InsertOne(ctx, entrada); err != nil {
		return fmt.Errorf("failed to insert activity entry: %w", err)
	}
	return nil
}

// GetActividad lists the latest activity entries, newest first.
func (r *MongoDBRepository) GetActividad(ctx context.Context, limit int64) ([]models.ActividadLog, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection(collActividad).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entradas []models.ActividadLog
	if err := cursor.All(ctx, &entradas); err != nil {
		return nil, fmt.Errorf("failed to decode activity entries: %w", err)
	}
	return entradas, nil
}
