package analisis

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

type repoStub struct {
	guardados []models.HistorialCalculo
	historial []models.HistorialCalculo
	filtros   models.HistorialFiltros
	actividad []models.ActividadLog
}

func (r *repoStub) CreateHistorialCalculo(_ context.Context, calculo models.HistorialCalculo) (models.HistorialCalculo, error) {
	calculo.ID = "h-1"
	r.guardados = append(r.guardados, calculo)
	return calculo, nil
}

func (r *repoStub) GetHistorialCalculos(_ context.Context, filtros models.HistorialFiltros) ([]models.HistorialCalculo, error) {
	r.filtros = filtros
	return r.historial, nil
}

func (r *repoStub) LogActividad(_ context.Context, entrada models.ActividadLog) error {
	r.actividad = append(r.actividad, entrada)
	return nil
}

func escenarioDePrueba(esc models.Escenario, margen string) models.EscenarioResult {
	return models.EscenarioResult{
		Escenario:   esc,
		MargenTotal: decimal.RequireFromString(margen),
		Viable:      true,
	}
}

func TestGuardarCalculo(t *testing.T) {
	repo := &repoStub{}
	svc := NewService(repo, nil)
	confianza := decimal.RequireFromString("0.80")
	cebado := decimal.RequireFromString("1.45")

	guardado, err := svc.GuardarCalculo(context.Background(), GuardarInput{
		NumAnimales: 500,
		Escenarios: []models.EscenarioResult{
			escenarioDePrueba(models.EscenarioLechon, "-846.67"),
			escenarioDePrueba(models.EscenarioTransicion, "2555.67"),
			escenarioDePrueba(models.EscenarioCebo, "-7114.17"),
		},
		EscenarioRecomendado:   models.EscenarioTransicion,
		ConfianzaRecomendacion: &confianza,
		PreciosMercado:         &PreciosMercadoInput{Cebado: &cebado},
		UserID:                 "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "h-1", guardado.ID)
	assert.Equal(t, "0.8", guardado.ConfianzaRecomendacion)
	assert.Equal(t, "1.45", guardado.PreciosMercado.Cebado)
	assert.Empty(t, guardado.PreciosMercado.Pienso)
	assert.Len(t, guardado.Escenarios, 3)
	assert.Equal(t, "2555.67", guardado.Escenarios[models.EscenarioTransicion].MargenTotal)
	assert.False(t, guardado.CreatedAt.IsZero())

	require.Len(t, repo.actividad, 1)
	assert.Equal(t, "calculo_guardado_historial", repo.actividad[0].Tipo)
}

func TestGuardarCalculoEscenarioDesconocido(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	_, err := svc.GuardarCalculo(context.Background(), GuardarInput{
		NumAnimales: 10,
		Escenarios:  []models.EscenarioResult{escenarioDePrueba(models.Escenario("engorde"), "1")},
	})
	require.ErrorIs(t, err, ErrEscenarioDesconocido)
}

func TestStatsConsultaSinLimite(t *testing.T) {
	repo := &repoStub{}
	svc := NewService(repo, nil)

	_, err := svc.Stats(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", repo.filtros.UserID)
	assert.Equal(t, int64(-1), repo.filtros.Limit)
}

func TestEvolucionAplicaDefectos(t *testing.T) {
	repo := &repoStub{}
	svc := NewService(repo, nil)

	_, err := svc.Evolucion(context.Background(), "u-1", 0, "")
	require.NoError(t, err)
	require.NotNil(t, repo.filtros.FechaDesde)
	assert.Equal(t, int64(500), repo.filtros.Limit)
}

func TestEvolucionMetricaNoValida(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	_, err := svc.Evolucion(context.Background(), "u-1", 6, Metrica("beneficio"))
	require.ErrorIs(t, err, ErrMetricaNoValida)
}
