package mongodb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// defaultHistorialLimit bounds unpaginated history listings.
const defaultHistorialLimit = 200

// CreateHistorialCalculo appends one computation record. Records are
// write-once; there is no update path.
func (r *MongoDBRepository) CreateHistorialCalculo(ctx context.Context, calculo models.HistorialCalculo) (models.HistorialCalculo, error) {
	calculo.ID = uuid.NewString()
	if _, err := r.collection(collHistorial).InsertOne(ctx, calculo); err != nil {
		return models.HistorialCalculo{}, fmt.Errorf("failed to insert history record: %w", err)
	}
	return calculo, nil
}

// GetHistorialCalculos lists computation records matching the filters, newest
// first. A Limit of -1 disables the cap; zero applies the default.
func (r *MongoDBRepository) GetHistorialCalculos(ctx context.Context, filtros models.HistorialFiltros) ([]models.HistorialCalculo, error) {
	filter := bson.M{}
	if filtros.UserID != "" {
		filter["userId"] = filtros.UserID
	}
	if filtros.LoteID != "" {
		filter["loteId"] = filtros.LoteID
	}
	if filtros.EscenarioRecomendado != "" {
		filter["escenarioRecomendado"] = filtros.EscenarioRecomendado
	}
	if filtros.FechaDesde != nil || filtros.FechaHasta != nil {
		rango := bson.M{}
		if filtros.FechaDesde != nil {
			rango["$gte"] = *filtros.FechaDesde
		}
		if filtros.FechaHasta != nil {
			rango["$lte"] = *filtros.FechaHasta
		}
		filter["createdAt"] = rango
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	switch {
	case filtros.Limit > 0:
		opts.SetLimit(filtros.Limit)
	case filtros.Limit == 0:
		opts.SetLimit(defaultHistorialLimit)
	}

	cursor, err := r.collection(collHistorial).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}
	defer cursor.Close(ctx)

	var historial []models.HistorialCalculo
	if err := cursor.All(ctx, &historial); err != nil {
		return nil, fmt.Errorf("failed to decode history records: %w", err)
	}
	return historial, nil
}
