package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// CreateCliente inserts a new CRM lead.
func (r *MongoDBRepository) CreateCliente(ctx context.Context, cliente models.Cliente) (models.Cliente, error) {
	now := time.Now().UTC()
	cliente.ID = uuid.NewString()
	cliente.CreatedAt = now
	cliente.UpdatedAt = now
	if _, err := r.collection(collClientes).InsertOne(ctx, cliente); err != nil {
		return models.Cliente{}, fmt.Errorf("failed to insert cliente: %w", err)
	}
	return cliente, nil
}

// GetClientes lists leads matching the filters. Busqueda matches name,
// company, email and municipality case-insensitively.
func (r *MongoDBRepository) GetClientes(ctx context.Context, filtros models.ClientesFiltros) ([]models.Cliente, error) {
	filter := bson.M{}
	if filtros.Tipo != "" {
		filter["tipoCliente"] = filtros.Tipo
	}
	if filtros.Provincia != "" {
		filter["provincia"] = filtros.Provincia
	}
	if filtros.CCAA != "" {
		filter["ccaa"] = filtros.CCAA
	}
	if filtros.Estado != "" {
		filter["estado"] = filtros.Estado
	}
	if filtros.Prioridad != "" {
		filter["prioridad"] = filtros.Prioridad
	}
	if filtros.Busqueda != "" {
		patron := primitive.Regex{Pattern: regexp.QuoteMeta(filtros.Busqueda), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"nombre": patron},
			bson.M{"empresa": patron},
			bson.M{"email": patron},
			bson.M{"municipio": patron},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}})
	cursor, err := r.collection(collClientes).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list clientes: %w", err)
	}
	defer cursor.Close(ctx)

	var clientes []models.Cliente
	if err := cursor.All(ctx, &clientes); err != nil {
		return nil, fmt.Errorf("failed to decode clientes: %w", err)
	}
	return clientes, nil
}

// GetClientePorID returns one lead by id, or nil when absent.
func (r *MongoDBRepository) GetClientePorID(ctx context.Context, id string) (*models.Cliente, error) {
	var cliente models.Cliente
	err := r.collection(collClientes).FindOne(ctx, bson.M{"_id": id}).Decode(&cliente)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cliente %s: %w", id, err)
	}
	return &cliente, nil
}

// UpdateCliente overwrites one lead in place.
func (r *MongoDBRepository) UpdateCliente(ctx context.Context, cliente models.Cliente) error {
	cliente.UpdatedAt = time.Now().UTC()
	result, err := r.collection(collClientes).ReplaceOne(ctx, bson.M{"_id": cliente.ID}, cliente)
	if err != nil {
		return fmt.Errorf("failed to update cliente %s: %w", cliente.ID, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteCliente removes one lead.
func (r *MongoDBRepository) DeleteCliente(ctx context.Context, id string) error {
	result, err := r.collection(collClientes).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete cliente %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
