package calculadora

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

func resultado(esc models.Escenario, margenPlazaDia, margenTotal string, viable bool) models.EscenarioResult {
	return models.EscenarioResult{
		Nombre:            esc.Nombre(),
		Escenario:         esc,
		MargenPorPlazaDia: dec(margenPlazaDia),
		MargenTotal:       dec(margenTotal),
		Viable:            viable,
	}
}

func TestRecomendarEligeMejorMargenPorPlazaDia(t *testing.T) {
	rec := Recomendar([]models.EscenarioResult{
		resultado(models.EscenarioLechon, "0.25", "1200", true),
		resultado(models.EscenarioTransicion, "0.18", "2500", true),
		resultado(models.EscenarioCebo, "0.10", "4000", true),
	})

	assert.Equal(t, models.EscenarioLechon, rec.Escenario)
	assert.Contains(t, rec.Razon, "mejor margen por plaza-día")
	assert.Contains(t, rec.Razon, "0.25")
	// Efficiency winner is not the total-margin winner: base confidence.
	assertDecimal(t, "0.70", rec.Confianza)
}

func TestRecomendarNuncaEligeNoViable(t *testing.T) {
	rec := Recomendar([]models.EscenarioResult{
		resultado(models.EscenarioLechon, "0.05", "100", true),
		resultado(models.EscenarioTransicion, "0.08", "300", true),
		resultado(models.EscenarioCebo, "9.99", "99999", false),
	})

	assert.Equal(t, models.EscenarioTransicion, rec.Escenario)
	// One scenario dropped out: penalized confidence.
	assertDecimal(t, "0.55", rec.Confianza)
}

func TestRecomendarSinViables(t *testing.T) {
	rec := Recomendar([]models.EscenarioResult{
		resultado(models.EscenarioCebo, "0.30", "5000", false),
	})

	require.Empty(t, rec.Escenario)
	assert.Empty(t, rec.Razon)
	assert.True(t, rec.Confianza.IsZero())
}

func TestRecomendarVacio(t *testing.T) {
	rec := Recomendar(nil)
	assert.Empty(t, rec.Escenario)
}

func TestRecomendarEmpateConservaOrdenCanonico(t *testing.T) {
	rec := Recomendar([]models.EscenarioResult{
		resultado(models.EscenarioLechon, "0.20", "1000", true),
		resultado(models.EscenarioTransicion, "0.20", "1000", true),
		resultado(models.EscenarioCebo, "0.20", "1000", true),
	})

	assert.Equal(t, models.EscenarioLechon, rec.Escenario)
}

func TestRecomendarConfianzaReforzada(t *testing.T) {
	// Efficiency winner doubles as total-margin winner with all viable.
	rec := Recomendar([]models.EscenarioResult{
		resultado(models.EscenarioLechon, "0.10", "800", true),
		resultado(models.EscenarioTransicion, "0.30", "3000", true),
		resultado(models.EscenarioCebo, "0.12", "2000", true),
	})

	assert.Equal(t, models.EscenarioTransicion, rec.Escenario)
	assertDecimal(t, "0.80", rec.Confianza)
}

func TestRecomendarConfianzaDentroDeLimites(t *testing.T) {
	casos := [][]models.EscenarioResult{
		{
			resultado(models.EscenarioLechon, "0.10", "800", true),
			resultado(models.EscenarioCebo, "0.30", "3000", false),
		},
		{
			resultado(models.EscenarioTransicion, "0.30", "3000", true),
		},
	}
	for _, caso := range casos {
		rec := Recomendar(caso)
		assert.True(t, rec.Confianza.GreaterThanOrEqual(dec("0.10")))
		assert.True(t, rec.Confianza.LessThanOrEqual(dec("0.95")))
	}
}
