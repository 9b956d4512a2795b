package calculadora

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

type repoStub struct {
	params    *models.ParametrosEconomicos
	centros   []models.Centro
	actividad []models.ActividadLog
}

func (r *repoStub) GetParametrosActivos(context.Context) (*models.ParametrosEconomicos, error) {
	return r.params, nil
}

func (r *repoStub) GetCentros(context.Context) ([]models.Centro, error) {
	return r.centros, nil
}

func (r *repoStub) LogActividad(_ context.Context, entrada models.ActividadLog) error {
	r.actividad = append(r.actividad, entrada)
	return nil
}

func TestCalcularSinParametrosUsaDefectos(t *testing.T) {
	repo := &repoStub{
		centros: []models.Centro{
			{Tipo: models.TipoCentroEngorde, PlazasTotales: 800, PlazasOcupadas: 200},
		},
	}
	svc := NewService(repo, nil)

	resultado, err := svc.Calcular(context.Background(), CalculoInput{NumAnimales: 500})
	require.NoError(t, err)

	assert.True(t, resultado.UsaCostesEstimados)
	assert.Equal(t, 600, resultado.PlazasCeboDisponibles)
	require.Len(t, resultado.Escenarios, 3)
	assert.Equal(t, models.EscenarioLechon, resultado.Escenarios[0].Escenario)
	assert.Equal(t, models.EscenarioTransicion, resultado.Escenarios[1].Escenario)
	assert.Equal(t, models.EscenarioCebo, resultado.Escenarios[2].Escenario)
	// With defaults and 500 animals only the 20-21 kg exit is profitable.
	assert.Equal(t, models.EscenarioTransicion, resultado.Recomendado)
	require.Len(t, repo.actividad, 1)
	assert.Equal(t, "calculo_realizado", repo.actividad[0].Tipo)
}

func TestCalcularConParametrosActivos(t *testing.T) {
	activos := models.ParametrosPorDefecto()
	activos.Activo = true
	repo := &repoStub{params: &activos}
	svc := NewService(repo, nil)

	resultado, err := svc.Calcular(context.Background(), CalculoInput{NumAnimales: 100})
	require.NoError(t, err)

	assert.False(t, resultado.UsaCostesEstimados)
	// No fattening sites registered: cebo cannot place the herd.
	assert.Equal(t, 0, resultado.PlazasCeboDisponibles)
	assert.False(t, resultado.Escenarios[2].Viable)
}

func TestCalcularAplicaOverridesDePrecio(t *testing.T) {
	repo := &repoStub{}
	svc := NewService(repo, nil)

	resultado, err := svc.Calcular(context.Background(), CalculoInput{
		NumAnimales:     500,
		PrecioVenta2021: "3.10",
	})
	require.NoError(t, err)

	// 20.5 kg × 3.10 €/kg.
	assertDecimal(t, "63.55", resultado.Escenarios[1].IngresosPorAnimal)
	// The other scenarios keep their defaults.
	assertDecimal(t, "21", resultado.Escenarios[0].IngresosPorAnimal)
}

func TestCalcularOverrideInvalido(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	_, err := svc.Calcular(context.Background(), CalculoInput{NumAnimales: 10, PrecioVentaCebo: "mucho"})
	require.Error(t, err)
}
