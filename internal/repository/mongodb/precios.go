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

// SavePuntosPrecio appends a batch of observed market prices.
func (r *MongoDBRepository) SavePuntosPrecio(ctx context.Context, puntos []models.PuntoPrecio) error {
	if len(puntos) == 0 {
		return nil
	}
	docs := make([]any, 0, len(puntos))
	for _, punto := range puntos {
		punto.ID = uuid.NewString()
		docs = append(docs, punto)
	}
	if _, err := r.collection(collPrecios).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert price points: %w", err)
	}
	return nil
}

// GetHistoricoPrecios returns one product's observed prices since desde,
// oldest first.
func (r *MongoDBRepository) GetHistoricoPrecios(ctx context.Context, producto models.ProductoMercado, desde time.Time) ([]models.PuntoPrecio, error) {
	filter := bson.M{
		"producto": producto,
		"fecha":    bson.M{"$gte": desde},
	}
	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}})
	cursor, err := r.collection(collPrecios).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list price points: %w", err)
	}
	defer cursor.Close(ctx)

	var puntos []models.PuntoPrecio
	if err := cursor.All(ctx, &puntos); err != nil {
		return nil, fmt.Errorf("failed to decode price points: %w", err)
	}
	return puntos, nil
}
