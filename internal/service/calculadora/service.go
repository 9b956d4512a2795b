package calculadora

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// Repository is the slice of the record store the calculator needs.
type Repository interface {
	GetParametrosActivos(ctx context.Context) (*models.ParametrosEconomicos, error)
	GetCentros(ctx context.Context) ([]models.Centro, error)
	LogActividad(ctx context.Context, entrada models.ActividadLog) error
}

// Service orchestrates one scenario computation: it resolves the active
// parameter snapshot, applies price overrides, reads the fattening capacity
// and runs the three scenarios through the engine.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a calculator service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// CalculoInput is the caller-supplied input of one computation. The price
// overrides are optional decimal strings for quick what-if runs.
type CalculoInput struct {
	NumAnimales     int    `json:"numAnimales" binding:"required,min=1"`
	PrecioVenta57   string `json:"precioVenta5_7,omitempty"`
	PrecioVenta2021 string `json:"precioVenta20_21,omitempty"`
	PrecioVentaCebo string `json:"precioVentaCebo,omitempty"`
	UserID          string `json:"-"`
}

// CalculoResultado is the ordered scenario triple plus the recommendation and
// the capacity figure the viability check used.
type CalculoResultado struct {
	Escenarios            []models.EscenarioResult `json:"escenarios"`
	Recomendado           models.Escenario         `json:"recomendado,omitempty"`
	RazonRecomendacion    string                   `json:"razonRecomendacion"`
	Confianza             decimal.Decimal          `json:"confianza"`
	PlazasCeboDisponibles int                      `json:"plazasCeboDisponibles"`
	UsaCostesEstimados    bool                     `json:"usaCostesEstimados"`
}

// Calcular runs the three scenarios and picks a recommendation.
func (s *Service) Calcular(ctx context.Context, in CalculoInput) (*CalculoResultado, error) {
	params, err := s.repo.GetParametrosActivos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active parameters: %w", err)
	}

	usaCostesEstimados := false
	var snapshot models.ParametrosEconomicos
	if params == nil {
		snapshot = models.ParametrosPorDefecto()
		usaCostesEstimados = true
		s.logger.Debug("no active parameters, falling back to defaults")
	} else {
		snapshot = *params
	}

	snapshot, err = aplicarOverrides(snapshot, in)
	if err != nil {
		return nil, err
	}

	centros, err := s.repo.GetCentros(ctx)
	if err != nil {
		return nil, fmt.Errorf("load centros: %w", err)
	}
	plazas := models.PlazasCeboDisponibles(centros)

	escenarios := make([]models.EscenarioResult, 0, len(models.EscenariosOrdenados))
	for _, esc := range models.EscenariosOrdenados {
		resultado, err := CalcularEscenario(esc, in.NumAnimales, snapshot, plazas)
		if err != nil {
			return nil, err
		}
		escenarios = append(escenarios, resultado)
	}

	rec := Recomendar(escenarios)

	recomendadoTexto := "ninguno"
	if rec.Escenario != "" {
		recomendadoTexto = string(rec.Escenario)
	}
	if err := s.repo.LogActividad(ctx, models.ActividadLog{
		Tipo:        "calculo_realizado",
		Descripcion: fmt.Sprintf("Cálculo de escenarios para %d animales. Recomendado: %s", in.NumAnimales, recomendadoTexto),
		Modulo:      "calculadora",
		UserID:      in.UserID,
	}); err != nil {
		s.logger.Warn("failed to log activity", zap.Error(err))
	}

	return &CalculoResultado{
		Escenarios:            escenarios,
		Recomendado:           rec.Escenario,
		RazonRecomendacion:    rec.Razon,
		Confianza:             rec.Confianza,
		PlazasCeboDisponibles: plazas,
		UsaCostesEstimados:    usaCostesEstimados,
	}, nil
}

func aplicarOverrides(params models.ParametrosEconomicos, in CalculoInput) (models.ParametrosEconomicos, error) {
	overrides := []struct {
		escenario models.Escenario
		precio    string
	}{
		{models.EscenarioLechon, in.PrecioVenta57},
		{models.EscenarioTransicion, in.PrecioVenta2021},
		{models.EscenarioCebo, in.PrecioVentaCebo},
	}
	for _, o := range overrides {
		if o.precio == "" {
			continue
		}
		precio, err := decimal.NewFromString(o.precio)
		if err != nil {
			return params, fmt.Errorf("precio de venta %q no válido: %w", o.precio, err)
		}
		params = params.ConPrecioVenta(o.escenario, precio)
	}
	return params, nil
}
