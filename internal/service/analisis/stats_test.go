package analisis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

func registro(id string, creado time.Time, margenes map[models.Escenario]string) models.HistorialCalculo {
	escenarios := make(map[models.Escenario]models.EscenarioSnapshot, len(margenes))
	for esc, margen := range margenes {
		escenarios[esc] = models.EscenarioSnapshot{MargenTotal: margen, Viable: true}
	}
	return models.HistorialCalculo{
		ID:          id,
		NumAnimales: 500,
		Escenarios:  escenarios,
		CreatedAt:   creado,
	}
}

func TestCalcularStatsVacio(t *testing.T) {
	stats := CalcularStats(nil)

	assert.Equal(t, 0, stats.TotalCalculos)
	assert.Nil(t, stats.MejorMargen)
	assert.Nil(t, stats.PeorMargen)
	assert.Nil(t, stats.UltimoCalculo)
	assert.Equal(t, 0.0, stats.MediaMargen[models.EscenarioLechon])
	assert.Equal(t, 0.0, stats.MediaMargen[models.EscenarioTransicion])
	assert.Equal(t, 0.0, stats.MediaMargen[models.EscenarioCebo])
}

func TestCalcularStats(t *testing.T) {
	base := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	historial := []models.HistorialCalculo{
		registro("a", base, map[models.Escenario]string{
			models.EscenarioLechon:     "100.00",
			models.EscenarioTransicion: "200.00",
			models.EscenarioCebo:       "300.00",
		}),
		registro("b", base.AddDate(0, 0, 3), map[models.Escenario]string{
			models.EscenarioLechon:     "300.00",
			models.EscenarioTransicion: "400.00",
			models.EscenarioCebo:       "500.00",
		}),
	}

	stats := CalcularStats(historial)

	assert.Equal(t, 2, stats.TotalCalculos)
	assert.Equal(t, 200.0, stats.MediaMargen[models.EscenarioLechon])
	assert.Equal(t, 300.0, stats.MediaMargen[models.EscenarioTransicion])
	assert.Equal(t, 400.0, stats.MediaMargen[models.EscenarioCebo])

	require.NotNil(t, stats.MejorMargen)
	assert.Equal(t, "b", stats.MejorMargen.ID)
	assert.Equal(t, 500.0, stats.MejorMargen.Margen)

	require.NotNil(t, stats.PeorMargen)
	assert.Equal(t, "a", stats.PeorMargen.ID)
	assert.Equal(t, 100.0, stats.PeorMargen.Margen)

	require.NotNil(t, stats.UltimoCalculo)
	assert.True(t, stats.UltimoCalculo.Equal(base.AddDate(0, 0, 3)))
}

func TestCalcularStatsEscenarioAusente(t *testing.T) {
	base := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	historial := []models.HistorialCalculo{
		registro("a", base, map[models.Escenario]string{
			models.EscenarioLechon: "300.00",
		}),
	}

	stats := CalcularStats(historial)

	// A missing scenario stays out of its mean but counts as zero for the
	// worst-margin scan.
	assert.Equal(t, 300.0, stats.MediaMargen[models.EscenarioLechon])
	assert.Equal(t, 0.0, stats.MediaMargen[models.EscenarioTransicion])
	require.NotNil(t, stats.PeorMargen)
	assert.Equal(t, 0.0, stats.PeorMargen.Margen)
	require.NotNil(t, stats.MejorMargen)
	assert.Equal(t, 300.0, stats.MejorMargen.Margen)
}
