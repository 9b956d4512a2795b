package analisis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// ErrEscenarioDesconocido is returned when a save request carries a scenario
// identifier outside the three known ones.
var ErrEscenarioDesconocido = errors.New("escenario desconocido")

// Repository is the slice of the record store the analytics module needs.
type Repository interface {
	CreateHistorialCalculo(ctx context.Context, calculo models.HistorialCalculo) (models.HistorialCalculo, error)
	GetHistorialCalculos(ctx context.Context, filtros models.HistorialFiltros) ([]models.HistorialCalculo, error)
	LogActividad(ctx context.Context, entrada models.ActividadLog) error
}

// Service persists computations into the history and serves aggregations
// over it. The aggregation math itself lives in pure functions.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new analytics service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// PreciosMercadoInput carries the optional market reference prices captured
// at computation time.
type PreciosMercadoInput struct {
	Cebado   *decimal.Decimal `json:"cebado,omitempty"`
	Lechon20 *decimal.Decimal `json:"lechon20,omitempty"`
	Lechon7  *decimal.Decimal `json:"lechon7,omitempty"`
	Pienso   *decimal.Decimal `json:"pienso,omitempty"`
}

// GuardarInput is one explicit "save to history" request.
type GuardarInput struct {
	LoteID                 string                   `json:"loteId,omitempty"`
	CodigoLote             string                   `json:"codigoLote,omitempty"`
	NumAnimales            int                      `json:"numAnimales" binding:"required,min=1"`
	UsaCostesEstimados     bool                     `json:"usaCostesEstimados"`
	Escenarios             []models.EscenarioResult `json:"escenarios" binding:"required"`
	EscenarioRecomendado   models.Escenario         `json:"escenarioRecomendado,omitempty"`
	ConfianzaRecomendacion *decimal.Decimal         `json:"confianzaRecomendacion,omitempty"`
	PreciosMercado         *PreciosMercadoInput     `json:"preciosMercado,omitempty"`
	Notas                  string                   `json:"notas,omitempty"`
	UserID                 string                   `json:"-"`
}

// GuardarCalculo snapshots a scenario triple into one immutable history record.
func (s *Service) GuardarCalculo(ctx context.Context, in GuardarInput) (*models.HistorialCalculo, error) {
	escenarios := make(map[models.Escenario]models.EscenarioSnapshot, len(in.Escenarios))
	for _, resultado := range in.Escenarios {
		if !resultado.Escenario.Valido() {
			return nil, fmt.Errorf("%w: %q", ErrEscenarioDesconocido, resultado.Escenario)
		}
		escenarios[resultado.Escenario] = models.SnapshotDeResultado(resultado)
	}

	calculo := models.HistorialCalculo{
		UserID:               in.UserID,
		LoteID:               in.LoteID,
		CodigoLote:           in.CodigoLote,
		NumAnimales:          in.NumAnimales,
		UsaCostesEstimados:   in.UsaCostesEstimados,
		Escenarios:           escenarios,
		EscenarioRecomendado: in.EscenarioRecomendado,
		Notas:                in.Notas,
		CreatedAt:            time.Now().UTC(),
	}
	if in.ConfianzaRecomendacion != nil {
		calculo.ConfianzaRecomendacion = in.ConfianzaRecomendacion.String()
	}
	if in.PreciosMercado != nil {
		calculo.PreciosMercado = models.PreciosMercadoRef{
			Cebado:   decimalString(in.PreciosMercado.Cebado),
			Lechon20: decimalString(in.PreciosMercado.Lechon20),
			Lechon7:  decimalString(in.PreciosMercado.Lechon7),
			Pienso:   decimalString(in.PreciosMercado.Pienso),
		}
	}

	guardado, err := s.repo.CreateHistorialCalculo(ctx, calculo)
	if err != nil {
		return nil, fmt.Errorf("save history record: %w", err)
	}

	recomendado := "N/A"
	if in.EscenarioRecomendado != "" {
		recomendado = string(in.EscenarioRecomendado)
	}
	if err := s.repo.LogActividad(ctx, models.ActividadLog{
		Tipo:        "calculo_guardado_historial",
		Descripcion: fmt.Sprintf("Cálculo guardado en historial: %d animales, recomendado: %s", in.NumAnimales, recomendado),
		Modulo:      "analisis",
		UserID:      in.UserID,
	}); err != nil {
		s.logger.Warn("failed to log activity", zap.Error(err))
	}

	return &guardado, nil
}

// Historial lists persisted computations, newest first.
func (s *Service) Historial(ctx context.Context, filtros models.HistorialFiltros) ([]models.HistorialCalculo, error) {
	return s.repo.GetHistorialCalculos(ctx, filtros)
}

// Stats aggregates the caller's full history.
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	historial, err := s.repo.GetHistorialCalculos(ctx, models.HistorialFiltros{UserID: userID, Limit: -1})
	if err != nil {
		return Stats{}, fmt.Errorf("load history: %w", err)
	}
	return CalcularStats(historial), nil
}

// Evolucion builds the weekly trend series for the requested metric over the
// last meses months (default 6).
func (s *Service) Evolucion(ctx context.Context, userID string, meses int, metrica Metrica) ([]PuntoEvolucion, error) {
	if meses <= 0 {
		meses = 6
	}
	if metrica == "" {
		metrica = MetricaMargenTotal
	}
	if !metrica.Valida() {
		return nil, ErrMetricaNoValida
	}

	desde := time.Now().UTC().AddDate(0, -meses, 0)
	historial, err := s.repo.GetHistorialCalculos(ctx, models.HistorialFiltros{
		UserID:     userID,
		FechaDesde: &desde,
		Limit:      500,
	})
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return CalcularEvolucion(historial, metrica)
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
