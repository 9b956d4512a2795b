package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CostesEscenario groups the configurable economics of a single scenario.
type CostesEscenario struct {
	PrecioVenta      decimal.Decimal `json:"precioVenta"`
	CostePienso      decimal.Decimal `json:"costePienso"`
	CosteSanidad     decimal.Decimal `json:"costeSanidad"`
	MortalidadPct    decimal.Decimal `json:"mortalidadPct"`
	IndiceConversion decimal.Decimal `json:"indiceConversion"`
	DiasEstancia     int             `json:"diasEstancia"`
}

// CostesFijos are the shared monthly fixed costs of the operation.
type CostesFijos struct {
	ManoObra     decimal.Decimal `json:"manoObra"`
	Energia      decimal.Decimal `json:"energia"`
	Amortizacion decimal.Decimal `json:"amortizacion"`
	Purines      decimal.Decimal `json:"purines"`
}

// Mensuales returns the sum of the four monthly fixed-cost components.
func (c CostesFijos) Mensuales() decimal.Decimal {
	return c.ManoObra.Add(c.Energia).Add(c.Amortizacion).Add(c.Purines)
}

// ParametrosEconomicos is a versioned economic configuration snapshot. At most
// one snapshot is active at a time; activating a new one retires the rest.
// Treated as immutable by the calculation pipeline.
type ParametrosEconomicos struct {
	ID          string                        `json:"id"`
	Nombre      string                        `json:"nombre"`
	Escenarios  map[Escenario]CostesEscenario `json:"escenarios"`
	CostesFijos CostesFijos                   `json:"costesFijos"`
	Activo      bool                          `json:"activo"`
	CreatedAt   time.Time                     `json:"createdAt"`
	UpdatedAt   time.Time                     `json:"updatedAt"`
}

// ConPrecioVenta returns a copy of the snapshot with the sale price of one
// scenario overridden. The receiver is left untouched.
func (p ParametrosEconomicos) ConPrecioVenta(esc Escenario, precio decimal.Decimal) ParametrosEconomicos {
	escenarios := make(map[Escenario]CostesEscenario, len(p.Escenarios))
	for k, v := range p.Escenarios {
		escenarios[k] = v
	}
	costes := escenarios[esc]
	costes.PrecioVenta = precio
	escenarios[esc] = costes
	p.Escenarios = escenarios
	return p
}

// Validar checks that every scenario group is present and carries sane values.
func (p ParametrosEconomicos) Validar() error {
	for _, esc := range EscenariosOrdenados {
		costes, ok := p.Escenarios[esc]
		if !ok {
			return fmt.Errorf("faltan los costes del escenario %q", esc)
		}
		if costes.PrecioVenta.IsNegative() || costes.CostePienso.IsNegative() || costes.CosteSanidad.IsNegative() {
			return fmt.Errorf("escenario %q: los importes no pueden ser negativos", esc)
		}
		if costes.MortalidadPct.IsNegative() || costes.MortalidadPct.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("escenario %q: mortalidad fuera de rango", esc)
		}
		if costes.DiasEstancia < 0 {
			return fmt.Errorf("escenario %q: días de estancia negativos", esc)
		}
	}
	if p.CostesFijos.Mensuales().IsNegative() {
		return fmt.Errorf("los costes fijos mensuales no pueden ser negativos")
	}
	return nil
}

// ParametrosPorDefecto returns the hard-coded fallback snapshot used when no
// configuration has been created yet. The values are part of the observable
// contract of the calculator and must not drift.
func ParametrosPorDefecto() ParametrosEconomicos {
	return ParametrosEconomicos{
		Nombre: "Parámetros por defecto",
		Escenarios: map[Escenario]CostesEscenario{
			EscenarioLechon: {
				PrecioVenta:      decimal.RequireFromString("3.50"),
				CostePienso:      decimal.RequireFromString("8.50"),
				CosteSanidad:     decimal.RequireFromString("1.50"),
				MortalidadPct:    decimal.RequireFromString("8.00"),
				IndiceConversion: decimal.RequireFromString("1.80"),
				DiasEstancia:     28,
			},
			EscenarioTransicion: {
				PrecioVenta:      decimal.RequireFromString("2.80"),
				CostePienso:      decimal.RequireFromString("22.00"),
				CosteSanidad:     decimal.RequireFromString("3.00"),
				MortalidadPct:    decimal.RequireFromString("3.00"),
				IndiceConversion: decimal.RequireFromString("2.20"),
				DiasEstancia:     65,
			},
			EscenarioCebo: {
				PrecioVenta:      decimal.RequireFromString("1.45"),
				CostePienso:      decimal.RequireFromString("95.00"),
				CosteSanidad:     decimal.RequireFromString("5.50"),
				MortalidadPct:    decimal.RequireFromString("2.00"),
				IndiceConversion: decimal.RequireFromString("2.80"),
				DiasEstancia:     160,
			},
		},
		CostesFijos: CostesFijos{
			ManoObra:     decimal.RequireFromString("3500.00"),
			Energia:      decimal.RequireFromString("1200.00"),
			Amortizacion: decimal.RequireFromString("800.00"),
			Purines:      decimal.RequireFromString("400.00"),
		},
	}
}
