// Package granja manages the physical side of the operation: production
// sites and the animal lots moving through them.
package granja

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// ErrNoEncontrado is returned when a referenced site or lot does not exist.
var ErrNoEncontrado = errors.New("registro no encontrado")

// Repository is the slice of the record store the farm module needs.
type Repository interface {
	CreateCentro(ctx context.Context, centro models.Centro) (models.Centro, error)
	GetCentros(ctx context.Context) ([]models.Centro, error)
	GetCentroPorID(ctx context.Context, id string) (*models.Centro, error)
	UpdateCentro(ctx context.Context, centro models.Centro) error
	DeleteCentro(ctx context.Context, id string) error

	CreateLote(ctx context.Context, lote models.Lote) (models.Lote, error)
	GetLotes(ctx context.Context) ([]models.Lote, error)
	GetLotePorID(ctx context.Context, id string) (*models.Lote, error)
	UpdateLote(ctx context.Context, lote models.Lote) error
	DeleteLote(ctx context.Context, id string) error

	LogActividad(ctx context.Context, entrada models.ActividadLog) error
	GetActividad(ctx context.Context, limit int64) ([]models.ActividadLog, error)
}

// Service implements site and lot management.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new farm service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// CrearCentro validates and persists a new production site.
func (s *Service) CrearCentro(ctx context.Context, centro models.Centro) (models.Centro, error) {
	if centro.Nombre == "" {
		return models.Centro{}, errors.New("el centro necesita un nombre")
	}
	if centro.Tipo != models.TipoCentroCria && centro.Tipo != models.TipoCentroEngorde {
		return models.Centro{}, fmt.Errorf("tipo de centro no válido: %q", centro.Tipo)
	}
	if centro.PlazasTotales < 0 || centro.PlazasOcupadas < 0 {
		return models.Centro{}, errors.New("las plazas no pueden ser negativas")
	}

	creado, err := s.repo.CreateCentro(ctx, centro)
	if err != nil {
		return models.Centro{}, err
	}
	s.logActividad(ctx, "centro_creado", fmt.Sprintf("Centro creado: %s (%s)", creado.Nombre, creado.Tipo), "granja")
	return creado, nil
}

// Centros lists every production site.
func (s *Service) Centros(ctx context.Context) ([]models.Centro, error) {
	return s.repo.GetCentros(ctx)
}

// Centro returns one site.
func (s *Service) Centro(ctx context.Context, id string) (*models.Centro, error) {
	centro, err := s.repo.GetCentroPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if centro == nil {
		return nil, ErrNoEncontrado
	}
	return centro, nil
}

// ActualizarCentro overwrites one site.
func (s *Service) ActualizarCentro(ctx context.Context, centro models.Centro) error {
	if centro.ID == "" {
		return errors.New("falta el id del centro")
	}
	if err := s.repo.UpdateCentro(ctx, centro); err != nil {
		return err
	}
	s.logActividad(ctx, "centro_actualizado", fmt.Sprintf("Centro actualizado: %s", centro.Nombre), "granja")
	return nil
}

// EliminarCentro removes one site.
func (s *Service) EliminarCentro(ctx context.Context, id string) error {
	if err := s.repo.DeleteCentro(ctx, id); err != nil {
		return err
	}
	s.logActividad(ctx, "centro_eliminado", fmt.Sprintf("Centro eliminado: %s", id), "granja")
	return nil
}

// CapacidadCebo reports the free fattening slots across all sites.
func (s *Service) CapacidadCebo(ctx context.Context) (int, error) {
	centros, err := s.repo.GetCentros(ctx)
	if err != nil {
		return 0, err
	}
	return models.PlazasCeboDisponibles(centros), nil
}

// CrearLote validates and persists a new lot. The referenced site must exist.
func (s *Service) CrearLote(ctx context.Context, lote models.Lote) (models.Lote, error) {
	if lote.Codigo == "" {
		return models.Lote{}, errors.New("el lote necesita un código")
	}
	if lote.NumAnimales < 1 {
		return models.Lote{}, errors.New("el lote necesita al menos un animal")
	}
	if lote.CentroID != "" {
		centro, err := s.repo.GetCentroPorID(ctx, lote.CentroID)
		if err != nil {
			return models.Lote{}, err
		}
		if centro == nil {
			return models.Lote{}, fmt.Errorf("%w: centro %s", ErrNoEncontrado, lote.CentroID)
		}
	}
	if lote.Fase == "" {
		lote.Fase = models.FaseLactancia
	}

	creado, err := s.repo.CreateLote(ctx, lote)
	if err != nil {
		return models.Lote{}, err
	}
	s.logActividad(ctx, "lote_creado", fmt.Sprintf("Lote creado: %s con %d animales", creado.Codigo, creado.NumAnimales), "granja")
	return creado, nil
}

// Lotes lists every lot.
func (s *Service) Lotes(ctx context.Context) ([]models.Lote, error) {
	return s.repo.GetLotes(ctx)
}

// Lote returns one lot.
func (s *Service) Lote(ctx context.Context, id string) (*models.Lote, error) {
	lote, err := s.repo.GetLotePorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, ErrNoEncontrado
	}
	return lote, nil
}

// ActualizarLote overwrites one lot.
func (s *Service) ActualizarLote(ctx context.Context, lote models.Lote) error {
	if lote.ID == "" {
		return errors.New("falta el id del lote")
	}
	if err := s.repo.UpdateLote(ctx, lote); err != nil {
		return err
	}
	s.logActividad(ctx, "lote_actualizado", fmt.Sprintf("Lote actualizado: %s (fase %s)", lote.Codigo, lote.Fase), "granja")
	return nil
}

// EliminarLote removes one lot.
func (s *Service) EliminarLote(ctx context.Context, id string) error {
	if err := s.repo.DeleteLote(ctx, id); err != nil {
		return err
	}
	s.logActividad(ctx, "lote_eliminado", fmt.Sprintf("Lote eliminado: %s", id), "granja")
	return nil
}

// Actividad returns the latest activity entries across all modules.
func (s *Service) Actividad(ctx context.Context, limit int64) ([]models.ActividadLog, error) {
	return s.repo.GetActividad(ctx, limit)
}

// ActividadStats summarizes recent activity volume per module.
func (s *Service) ActividadStats(ctx context.Context, limit int64) (models.ActividadStats, error) {
	entradas, err := s.repo.GetActividad(ctx, limit)
	if err != nil {
		return models.ActividadStats{}, err
	}
	return models.CalcularActividadStats(entradas), nil
}

func (s *Service) logActividad(ctx context.Context, tipo, descripcion, modulo string) {
	if err := s.repo.LogActividad(ctx, models.ActividadLog{Tipo: tipo, Descripcion: descripcion, Modulo: modulo}); err != nil {
		s.logger.Warn("failed to log activity", zap.Error(err))
	}
}
