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

// CreateOferta inserts a new commercial offer.
func (r *MongoDBRepository) CreateOferta(ctx context.Context, oferta models.Oferta) (models.Oferta, error) {
	now := time.Now().UTC()
	oferta.ID = uuid.NewString()
	oferta.CreatedAt = now
	oferta.UpdatedAt = now
	if _, err := r.collection(collOfertas).InsertOne(ctx, oferta); err != nil {
		return models.Oferta{}, fmt.Errorf("failed to insert oferta: %w", err)
	}
	return oferta, nil
}

// GetOfertas lists offers, optionally narrowed by customer and/or lot,
// newest first.
func (r *MongoDBRepository) GetOfertas(ctx context.Context, clienteID, loteID string) ([]models.Oferta, error) {
	filter := bson.M{}
	if clienteID != "" {
		filter["clienteId"] = clienteID
	}
	if loteID != "" {
		filter["loteId"] = loteID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(collOfertas).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ofertas: %w", err)
	}
	defer cursor.Close(ctx)

	var ofertas []models.Oferta
	if err := cursor.All(ctx, &ofertas); err != nil {
		return nil, fmt.Errorf("failed to decode ofertas: %w", err)
	}
	return ofertas, nil
}

// GetOfertaPorID returns one offer by id, or nil when absent.
func (r *MongoDBRepository) GetOfertaPorID(ctx context.Context, id string) (*models.Oferta, error) {
	var oferta models.Oferta
	err := r.collection(collOfertas).FindOne(ctx, bson.M{"_id": id}).Decode(&oferta)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load oferta %s: %w", id, err)
	}
	return &oferta, nil
}

// UpdateOferta overwrites one offer in place.
func (r *MongoDBRepository) UpdateOferta(ctx context.Context, oferta models.Oferta) error {
	oferta.UpdatedAt = time.Now().UTC()
	result, err := r.collection(collOfertas).ReplaceOne(ctx, bson.M{"_id": oferta.ID}, oferta)
	if err != nil {
		return fmt.Errorf("failed to update oferta %s: %w", oferta.ID, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
