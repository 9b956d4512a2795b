package calculadora

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// ErrEscenarioNoValido is returned when an unknown scenario identifier is
// requested of the engine.
var ErrEscenarioNoValido = errors.New("escenario no válido")

var (
	treinta = decimal.NewFromInt(30)
	cien    = decimal.NewFromInt(100)
	uno     = decimal.NewFromInt(1)
)

// pesosVenta maps each scenario to its fixed sale weight in kg.
var pesosVenta = map[models.Escenario]decimal.Decimal{
	models.EscenarioLechon:     decimal.NewFromInt(6),
	models.EscenarioTransicion: decimal.RequireFromString("20.5"),
	models.EscenarioCebo:       decimal.NewFromInt(105),
}

// CalcularEscenario computes the full economics of one scenario for the given
// herd size against the supplied parameter snapshot and available fattening
// capacity. Pure: no I/O, no shared state.
//
// Total income scales with post-mortality survivors while total costs scale
// with the full starting herd. Costs are sunk before attrition, so the
// asymmetry is intentional.
func CalcularEscenario(esc models.Escenario, numAnimales int, params models.ParametrosEconomicos, plazasDisponibles int) (models.EscenarioResult, error) {
	costes, ok := params.Escenarios[esc]
	if !ok || !esc.Valido() {
		return models.EscenarioResult{}, fmt.Errorf("%w: %q", ErrEscenarioNoValido, esc)
	}

	pesoVenta := pesosVenta[esc]
	dias := decimal.NewFromInt(int64(costes.DiasEstancia))
	animales := decimal.NewFromInt(int64(numAnimales))

	// Monthly fixed overhead amortized over the herd and over the days the
	// scenario keeps a slot occupied.
	var costeFijosPorAnimal decimal.Decimal
	if numAnimales > 0 {
		costeFijosPorAnimal = params.CostesFijos.Mensuales().Div(treinta).Div(animales).Mul(dias)
	}

	supervivencia := uno.Sub(costes.MortalidadPct.Div(cien))
	animalesFinales := animales.Mul(supervivencia).Round(0).IntPart()

	ingresosPorAnimal := pesoVenta.Mul(costes.PrecioVenta)
	ingresosTotales := ingresosPorAnimal.Mul(decimal.NewFromInt(animalesFinales))
	costeTotalPorAnimal := costes.CostePienso.Add(costes.CosteSanidad).Add(costeFijosPorAnimal)
	costesTotales := costeTotalPorAnimal.Mul(animales)
	margenPorAnimal := ingresosPorAnimal.Sub(costeTotalPorAnimal)
	margenTotal := ingresosTotales.Sub(costesTotales)

	var margenPorPlazaDia decimal.Decimal
	if costes.DiasEstancia > 0 {
		margenPorPlazaDia = margenPorAnimal.Div(dias)
	}

	var rentabilidadPct decimal.Decimal
	if !costeTotalPorAnimal.IsZero() {
		rentabilidadPct = margenPorAnimal.Div(costeTotalPorAnimal).Mul(cien)
	}

	viable := true
	var razonNoViable string
	if esc == models.EscenarioCebo && numAnimales > plazasDisponibles {
		viable = false
		razonNoViable = fmt.Sprintf("Se necesitan %d plazas de cebo pero solo hay %d disponibles", numAnimales, plazasDisponibles)
	}

	return models.EscenarioResult{
		Nombre:              esc.Nombre(),
		Escenario:           esc,
		PesoVenta:           pesoVenta,
		PrecioKg:            costes.PrecioVenta,
		IngresosPorAnimal:   ingresosPorAnimal.Round(2),
		IngresosTotales:     ingresosTotales.Round(2),
		CostePienso:         costes.CostePienso,
		CosteSanidad:        costes.CosteSanidad,
		CosteFijosPorAnimal: costeFijosPorAnimal.Round(2),
		CosteTotalPorAnimal: costeTotalPorAnimal.Round(2),
		CostesTotales:       costesTotales.Round(2),
		MortalidadPct:       costes.MortalidadPct,
		AnimalesFinales:     animalesFinales,
		MargenPorAnimal:     margenPorAnimal.Round(2),
		MargenTotal:         margenTotal.Round(2),
		DiasOcupacion:       costes.DiasEstancia,
		MargenPorPlazaDia:   margenPorPlazaDia.Round(2),
		RentabilidadPct:     rentabilidadPct.Round(2),
		Viable:              viable,
		RazonNoViable:       razonNoViable,
	}, nil
}
