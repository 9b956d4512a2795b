package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// costesEscenarioDoc is the stored form of one scenario cost group. Decimal
// values persist as exact strings.
type costesEscenarioDoc struct {
	PrecioVenta      string `bson:"precioVenta"`
	CostePienso      string `bson:"costePienso"`
	CosteSanidad     string `bson:"costeSanidad"`
	MortalidadPct    string `bson:"mortalidadPct"`
	IndiceConversion string `bson:"indiceConversion"`
	DiasEstancia     int    `bson:"diasEstancia"`
}

type costesFijosDoc struct {
	ManoObra     string `bson:"manoObra"`
	Energia      string `bson:"energia"`
	Amortizacion string `bson:"amortizacion"`
	Purines      string `bson:"purines"`
}

type parametrosDoc struct {
	ID          string                                  `bson:"_id,omitempty"`
	Nombre      string                                  `bson:"nombre"`
	Escenarios  map[models.Escenario]costesEscenarioDoc `bson:"escenarios"`
	CostesFijos costesFijosDoc                          `bson:"costesFijos"`
	Activo      bool                                    `bson:"activo"`
	CreatedAt   time.Time                               `bson:"createdAt"`
	UpdatedAt   time.Time                               `bson:"updatedAt"`
}

func parametrosADoc(p models.ParametrosEconomicos) parametrosDoc {
	escenarios := make(map[models.Escenario]costesEscenarioDoc, len(p.Escenarios))
	for esc, costes := range p.Escenarios {
		escenarios[esc] = costesEscenarioDoc{
			PrecioVenta:      costes.PrecioVenta.String(),
			CostePienso:      costes.CostePienso.String(),
			CosteSanidad:     costes.CosteSanidad.String(),
			MortalidadPct:    costes.MortalidadPct.String(),
			IndiceConversion: costes.IndiceConversion.String(),
			DiasEstancia:     costes.DiasEstancia,
		}
	}
	return parametrosDoc{
		ID:         p.ID,
		Nombre:     p.Nombre,
		Escenarios: escenarios,
		CostesFijos: costesFijosDoc{
			ManoObra:     p.CostesFijos.ManoObra.String(),
			Energia:      p.CostesFijos.Energia.String(),
			Amortizacion: p.CostesFijos.Amortizacion.String(),
			Purines:      p.CostesFijos.Purines.String(),
		},
		Activo:    p.Activo,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func docAParametros(doc parametrosDoc) (models.ParametrosEconomicos, error) {
	escenarios := make(map[models.Escenario]models.CostesEscenario, len(doc.Escenarios))
	for esc, costes := range doc.Escenarios {
		grupo := models.CostesEscenario{DiasEstancia: costes.DiasEstancia}
		var err error
		if grupo.PrecioVenta, err = decimal.NewFromString(costes.PrecioVenta); err != nil {
			return models.ParametrosEconomicos{}, fmt.Errorf("parse precioVenta of %q: %w", esc, err)
		}
		if grupo.CostePienso, err = decimal.NewFromString(costes.CostePienso); err != nil {
			return models.ParametrosEconomicos{}, fmt.Errorf("parse costePienso of %q: %w", esc, err)
		}
		if grupo.CosteSanidad, err = decimal.NewFromString(costes.CosteSanidad); err != nil {
			return models.ParametrosEconomicos{}, fmt.Errorf("parse costeSanidad of %q: %w", esc, err)
		}
		if grupo.MortalidadPct, err = decimal.NewFromString(costes.MortalidadPct); err != nil {
			return models.ParametrosEconomicos{}, fmt.Errorf("parse mortalidadPct of %q: %w", esc, err)
		}
		if grupo.IndiceConversion, err = decimal.NewFromString(costes.IndiceConversion); err != nil {
			return models.ParametrosEconomicos{}, fmt.Errorf("parse indiceConversion of %q: %w", esc, err)
		}
		escenarios[esc] = grupo
	}

	fijos := models.CostesFijos{}
	var err error
	if fijos.ManoObra, err = decimal.NewFromString(doc.CostesFijos.ManoObra); err != nil {
		return models.ParametrosEconomicos{}, fmt.Errorf("parse manoObra: %w", err)
	}
	if fijos.Energia, err = decimal.NewFromString(doc.CostesFijos.Energia); err != nil {
		return models.ParametrosEconomicos{}, fmt.Errorf("parse energia: %w", err)
	}
	if fijos.Amortizacion, err = decimal.NewFromString(doc.CostesFijos.Amortizacion); err != nil {
		return models.ParametrosEconomicos{}, fmt.Errorf("parse amortizacion: %w", err)
	}
	if fijos.Purines, err = decimal.NewFromString(doc.CostesFijos.Purines); err != nil {
		return models.ParametrosEconomicos{}, fmt.Errorf("parse purines: %w", err)
	}

	return models.ParametrosEconomicos{
		ID:          doc.ID,
		Nombre:      doc.Nombre,
		Escenarios:  escenarios,
		CostesFijos: fijos,
		Activo:      doc.Activo,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// CreateParametros inserts a new parameter snapshot. When the snapshot comes
// in active, every previously active snapshot is retired first so at most one
// stays active.
func (r *MongoDBRepository) CreateParametros(ctx context.Context, params models.ParametrosEconomicos) (models.ParametrosEconomicos, error) {
	now := time.Now().UTC()
	params.ID = uuid.NewString()
	params.CreatedAt = now
	params.UpdatedAt = now

	coll := r.collection(collParametros)
	if params.Activo {
		if _, err := coll.UpdateMany(ctx,
			bson.M{"activo": true},
			bson.M{"$set": bson.M{"activo": false, "updatedAt": now}},
		); err != nil {
			return models.ParametrosEconomicos{}, fmt.Errorf("failed to retire active parameters: %w", err)
		}
	}

	if _, err := coll.InsertOne(ctx, parametrosADoc(params)); err != nil {
		return models.ParametrosEconomicos{}, fmt.Errorf("failed to insert parameters: %w", err)
	}
	return params, nil
}

// GetParametrosActivos returns the single active snapshot, or nil when none
// has been created yet.
func (r *MongoDBRepository) GetParametrosActivos(ctx context.Context) (*models.ParametrosEconomicos, error) {
	var doc parametrosDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	err := r.collection(collParametros).FindOne(ctx, bson.M{"activo": true}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active parameters: %w", err)
	}
	params, err := docAParametros(doc)
	if err != nil {
		return nil, err
	}
	return &params, nil
}

// GetParametrosPorID returns one snapshot by id, or nil when absent.
func (r *MongoDBRepository) GetParametrosPorID(ctx context.Context, id string) (*models.ParametrosEconomicos, error) {
	var doc parametrosDoc
	err := r.collection(collParametros).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load parameters %s: %w", id, err)
	}
	params, err := docAParametros(doc)
	if err != nil {
		return nil, err
	}
	return &params, nil
}

// ListParametros returns every snapshot, newest first.
func (r *MongoDBRepository) ListParametros(ctx context.Context) ([]models.ParametrosEconomicos, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection(collParametros).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list parameters: %w", err)
	}
	defer cursor.Close(ctx)

	var lista []models.ParametrosEconomicos
	for cursor.Next(ctx) {
		var doc parametrosDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode parameters: %w", err)
		}
		params, err := docAParametros(doc)
		if err != nil {
			return nil, err
		}
		lista = append(lista, params)
	}
	return lista, cursor.Err()
}

// ReplaceParametros overwrites one snapshot in place. Activation semantics
// mirror CreateParametros: an activating replace retires the others first.
func (r *MongoDBRepository) ReplaceParametros(ctx context.Context, params models.ParametrosEconomicos) error {
	now := time.Now().UTC()
	params.UpdatedAt = now

	coll := r.collection(collParametros)
	if params.Activo {
		if _, err := coll.UpdateMany(ctx,
			bson.M{"activo": true, "_id": bson.M{"$ne": params.ID}},
			bson.M{"$set": bson.M{"activo": false, "updatedAt": now}},
		); err != nil {
			return fmt.Errorf("failed to retire active parameters: %w", err)
		}
	}

	result, err := coll.ReplaceOne(ctx, bson.M{"_id": params.ID}, parametrosADoc(params))
	if err != nil {
		return fmt.Errorf("failed to replace parameters %s: %w", params.ID, err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
