package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametrosPorDefecto(t *testing.T) {
	params := ParametrosPorDefecto()

	require.NoError(t, params.Validar())
	assert.False(t, params.Activo)
	assert.Len(t, params.Escenarios, 3)
	assert.True(t, params.CostesFijos.Mensuales().Equal(decimal.RequireFromString("5900.00")))
	assert.Equal(t, 28, params.Escenarios[EscenarioLechon].DiasEstancia)
	assert.Equal(t, 65, params.Escenarios[EscenarioTransicion].DiasEstancia)
	assert.Equal(t, 160, params.Escenarios[EscenarioCebo].DiasEstancia)
}

func TestConPrecioVentaNoMutaElOriginal(t *testing.T) {
	original := ParametrosPorDefecto()
	precioOriginal := original.Escenarios[EscenarioCebo].PrecioVenta

	modificado := original.ConPrecioVenta(EscenarioCebo, decimal.RequireFromString("1.60"))

	assert.True(t, modificado.Escenarios[EscenarioCebo].PrecioVenta.Equal(decimal.RequireFromString("1.60")))
	assert.True(t, original.Escenarios[EscenarioCebo].PrecioVenta.Equal(precioOriginal))
	// The other scenarios carry over untouched.
	assert.True(t, modificado.Escenarios[EscenarioLechon].PrecioVenta.Equal(original.Escenarios[EscenarioLechon].PrecioVenta))
}

func TestValidarRechazaValoresFueraDeRango(t *testing.T) {
	casos := map[string]func(*ParametrosEconomicos){
		"escenario ausente": func(p *ParametrosEconomicos) {
			delete(p.Escenarios, EscenarioCebo)
		},
		"precio negativo": func(p *ParametrosEconomicos) {
			c := p.Escenarios[EscenarioLechon]
			c.PrecioVenta = decimal.RequireFromString("-1")
			p.Escenarios[EscenarioLechon] = c
		},
		"mortalidad sobre cien": func(p *ParametrosEconomicos) {
			c := p.Escenarios[EscenarioTransicion]
			c.MortalidadPct = decimal.RequireFromString("101")
			p.Escenarios[EscenarioTransicion] = c
		},
		"estancia negativa": func(p *ParametrosEconomicos) {
			c := p.Escenarios[EscenarioCebo]
			c.DiasEstancia = -1
			p.Escenarios[EscenarioCebo] = c
		},
	}

	for nombre, romper := range casos {
		params := ParametrosPorDefecto()
		romper(&params)
		assert.Error(t, params.Validar(), nombre)
	}
}
