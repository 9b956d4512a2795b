// Package mongodb implements the application record store on MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// Collection names.
const (
	collParametros = "parametros_economicos"
	collHistorial  = "historial_calculos"
	collCentros    = "centros"
	collLotes      = "lotes"
	collClientes   = "clientes"
	collOfertas    = "ofertas"
	collActividad  = "actividad_log"
	collPrecios    = "precios_mercado"
)

// Repository defines the full persistence surface of the application.
type Repository interface {
	// Economic parameters.
	CreateParametros(ctx context.Context, params models.ParametrosEconomicos) (models.ParametrosEconomicos, error)
	GetParametrosActivos(ctx context.Context) (*models.ParametrosEconomicos, error)
	GetParametrosPorID(ctx context.Context, id string) (*models.ParametrosEconomicos, error)
	ListParametros(ctx context.Context) ([]models.ParametrosEconomicos, error)
	ReplaceParametros(ctx context.Context, params models.ParametrosEconomicos) error

	// Computation history.
	CreateHistorialCalculo(ctx context.Context, calculo models.HistorialCalculo) (models.HistorialCalculo, error)
	GetHistorialCalculos(ctx context.Context, filtros models.HistorialFiltros) ([]models.HistorialCalculo, error)

	// Production sites.
	CreateCentro(ctx context.Context, centro models.Centro) (models.Centro, error)
	GetCentros(ctx context.Context) ([]models.Centro, error)
	GetCentroPorID(ctx context.Context, id string) (*models.Centro, error)
	UpdateCentro(ctx context.Context, centro models.Centro) error
	DeleteCentro(ctx context.Context, id string) error

	// Lots.
	CreateLote(ctx context.Context, lote models.Lote) (models.Lote, error)
	GetLotes(ctx context.Context) ([]models.Lote, error)
	GetLotePorID(ctx context.Context, id string) (*models.Lote, error)
	UpdateLote(ctx context.Context, lote models.Lote) error
	DeleteLote(ctx context.Context, id string) error

	// CRM.
	CreateCliente(ctx context.Context, cliente models.Cliente) (models.Cliente, error)
	GetClientes(ctx context.Context, filtros models.ClientesFiltros) ([]models.Cliente, error)
	GetClientePorID(ctx context.Context, id string) (*models.Cliente, error)
	UpdateCliente(ctx context.Context, cliente models.Cliente) error
	DeleteCliente(ctx context.Context, id string) error

	// Offers.
	CreateOferta(ctx context.Context, oferta models.Oferta) (models.Oferta, error)
	GetOfertas(ctx context.Context, clienteID, loteID string) ([]models.Oferta, error)
	GetOfertaPorID(ctx context.Context, id string) (*models.Oferta, error)
	UpdateOferta(ctx context.Context, oferta models.Oferta) error

	// Activity log.
	LogActividad(ctx context.Context, entrada models.ActividadLog) error
	GetActividad(ctx context.Context, limit int64) ([]models.ActividadLog, error)

	// Market price history.
	SavePuntosPrecio(ctx context.Context, puntos []models.PuntoPrecio) error
	GetHistoricoPrecios(ctx context.Context, producto models.ProductoMercado, desde time.Time) ([]models.PuntoPrecio, error)
}

// MongoDBRepository implements Repository on a MongoDB database.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
