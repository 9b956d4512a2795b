// Package parametros manages the versioned economic parameter snapshots the
// calculator runs on.
package parametros

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// ErrNoEncontrado is returned when a referenced snapshot does not exist.
var ErrNoEncontrado = errors.New("parámetros no encontrados")

// Repository is the slice of the record store the parameter module needs.
type Repository interface {
	CreateParametros(ctx context.Context, params models.ParametrosEconomicos) (models.ParametrosEconomicos, error)
	GetParametrosActivos(ctx context.Context) (*models.ParametrosEconomicos, error)
	GetParametrosPorID(ctx context.Context, id string) (*models.ParametrosEconomicos, error)
	ListParametros(ctx context.Context) ([]models.ParametrosEconomicos, error)
	ReplaceParametros(ctx context.Context, params models.ParametrosEconomicos) error

	LogActividad(ctx context.Context, entrada models.ActividadLog) error
}

// Service implements parameter snapshot management. Snapshots are immutable
// from the calculator's point of view; editing always goes through here.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new parameter service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Crear validates and persists a new snapshot. New snapshots activate by
// default, retiring the previously active one.
func (s *Service) Crear(ctx context.Context, params models.ParametrosEconomicos) (models.ParametrosEconomicos, error) {
	if params.Nombre == "" {
		params.Nombre = "Parámetros personalizados"
	}
	if err := params.Validar(); err != nil {
		return models.ParametrosEconomicos{}, err
	}
	params.Activo = true

	creados, err := s.repo.CreateParametros(ctx, params)
	if err != nil {
		return models.ParametrosEconomicos{}, err
	}
	s.logActividad(ctx, "parametros_creados", fmt.Sprintf("Parámetros creados y activados: %s", creados.Nombre))
	return creados, nil
}

// Activos returns the current snapshot. When none exists yet, the hard-coded
// defaults come back with Activo unset so callers can tell them apart.
func (s *Service) Activos(ctx context.Context) (models.ParametrosEconomicos, error) {
	params, err := s.repo.GetParametrosActivos(ctx)
	if err != nil {
		return models.ParametrosEconomicos{}, err
	}
	if params == nil {
		return models.ParametrosPorDefecto(), nil
	}
	return *params, nil
}

// Listar returns every snapshot, newest first.
func (s *Service) Listar(ctx context.Context) ([]models.ParametrosEconomicos, error) {
	return s.repo.ListParametros(ctx)
}

// Actualizar replaces one snapshot after validation.
func (s *Service) Actualizar(ctx context.Context, params models.ParametrosEconomicos) (models.ParametrosEconomicos, error) {
	if params.ID == "" {
		return models.ParametrosEconomicos{}, errors.New("falta el id de los parámetros")
	}
	if err := params.Validar(); err != nil {
		return models.ParametrosEconomicos{}, err
	}

	existentes, err := s.repo.GetParametrosPorID(ctx, params.ID)
	if err != nil {
		return models.ParametrosEconomicos{}, err
	}
	if existentes == nil {
		return models.ParametrosEconomicos{}, ErrNoEncontrado
	}
	params.CreatedAt = existentes.CreatedAt

	if err := s.repo.ReplaceParametros(ctx, params); err != nil {
		return models.ParametrosEconomicos{}, err
	}
	s.logActividad(ctx, "parametros_actualizados", fmt.Sprintf("Parámetros actualizados: %s", params.Nombre))
	return params, nil
}

// Activar switches the active snapshot to the given one.
func (s *Service) Activar(ctx context.Context, id string) (models.ParametrosEconomicos, error) {
	params, err := s.repo.GetParametrosPorID(ctx, id)
	if err != nil {
		return models.ParametrosEconomicos{}, err
	}
	if params == nil {
		return models.ParametrosEconomicos{}, ErrNoEncontrado
	}

	params.Activo = true
	if err := s.repo.ReplaceParametros(ctx, *params); err != nil {
		return models.ParametrosEconomicos{}, err
	}
	s.logActividad(ctx, "parametros_activados", fmt.Sprintf("Parámetros activados: %s", params.Nombre))
	return *params, nil
}

func (s *Service) logActividad(ctx context.Context, tipo, descripcion string) {
	if err := s.repo.LogActividad(ctx, models.ActividadLog{Tipo: tipo, Descripcion: descripcion, Modulo: "parametros"}); err != nil {
		s.logger.Warn("failed to log activity", zap.Error(err))
	}
}
