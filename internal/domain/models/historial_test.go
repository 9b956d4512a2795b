package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotDeResultadoConservaLosDigitos(t *testing.T) {
	resultado := EscenarioResult{
		Escenario:           EscenarioTransicion,
		PrecioKg:            decimal.RequireFromString("2.80"),
		IngresosPorAnimal:   decimal.RequireFromString("57.40"),
		CosteTotalPorAnimal: decimal.RequireFromString("50.57"),
		MargenPorAnimal:     decimal.RequireFromString("6.83"),
		MargenTotal:         decimal.RequireFromString("2555.67"),
		MargenPorPlazaDia:   decimal.RequireFromString("0.11"),
		RentabilidadPct:     decimal.RequireFromString("13.51"),
		MortalidadPct:       decimal.RequireFromString("3.00"),
		Viable:              true,
	}

	snap := SnapshotDeResultado(resultado)

	assert.Equal(t, "2.8", snap.PrecioKg)
	assert.Equal(t, "57.4", snap.IngresosPorAnimal)
	assert.Equal(t, "2555.67", snap.MargenTotal)
	assert.True(t, snap.Viable)

	// Every stored field parses back to a value equal to the original.
	casos := map[string]struct {
		guardado string
		original decimal.Decimal
	}{
		"precioKg":            {snap.PrecioKg, resultado.PrecioKg},
		"ingresosPorAnimal":   {snap.IngresosPorAnimal, resultado.IngresosPorAnimal},
		"costeTotalPorAnimal": {snap.CosteTotalPorAnimal, resultado.CosteTotalPorAnimal},
		"margenPorAnimal":     {snap.MargenPorAnimal, resultado.MargenPorAnimal},
		"margenTotal":         {snap.MargenTotal, resultado.MargenTotal},
		"margenPorPlazaDia":   {snap.MargenPorPlazaDia, resultado.MargenPorPlazaDia},
		"rentabilidadPct":     {snap.RentabilidadPct, resultado.RentabilidadPct},
		"mortalidadPct":       {snap.MortalidadPct, resultado.MortalidadPct},
	}
	for campo, caso := range casos {
		parseado, err := decimal.NewFromString(caso.guardado)
		require.NoError(t, err, "campo %s", campo)
		assert.True(t, parseado.Equal(caso.original), "campo %s: %s != %s", campo, parseado, caso.original)
	}
}

func TestMargenTotalDe(t *testing.T) {
	calc := HistorialCalculo{
		Escenarios: map[Escenario]EscenarioSnapshot{
			EscenarioLechon: {MargenTotal: "-846.67"},
			EscenarioCebo:   {MargenTotal: ""},
		},
	}

	margen, ok := calc.MargenTotalDe(EscenarioLechon)
	require.True(t, ok)
	assert.True(t, margen.Equal(decimal.RequireFromString("-846.67")))

	_, ok = calc.MargenTotalDe(EscenarioCebo)
	assert.False(t, ok)

	_, ok = calc.MargenTotalDe(EscenarioTransicion)
	assert.False(t, ok)
}
