package calculadora

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// Recomendacion names the scenario the engine would run with, and why.
// Escenario is empty when no scenario is viable.
type Recomendacion struct {
	Escenario models.Escenario `json:"escenario,omitempty"`
	Razon     string           `json:"razon"`
	Confianza decimal.Decimal  `json:"confianza"`
}

var (
	confianzaBase    = decimal.RequireFromString("0.70")
	confianzaExtra   = decimal.RequireFromString("0.10")
	confianzaCastigo = decimal.RequireFromString("0.15")
	confianzaMin     = decimal.RequireFromString("0.10")
	confianzaMax     = decimal.RequireFromString("0.95")
)

// Recomendar selects the best viable scenario by margin per slot-day. Slot-days
// are the scarce resource, so capital efficiency wins over absolute margin.
// Ties resolve to the first scenario in canonical order.
func Recomendar(resultados []models.EscenarioResult) Recomendacion {
	var viables []models.EscenarioResult
	for _, r := range resultados {
		if r.Viable {
			viables = append(viables, r)
		}
	}
	if len(viables) == 0 {
		return Recomendacion{}
	}

	mejor := viables[0]
	mejorMargenTotal := viables[0]
	for _, r := range viables[1:] {
		if r.MargenPorPlazaDia.GreaterThan(mejor.MargenPorPlazaDia) {
			mejor = r
		}
		if r.MargenTotal.GreaterThan(mejorMargenTotal.MargenTotal) {
			mejorMargenTotal = r
		}
	}

	confianza := confianzaBase
	if mejor.Escenario == mejorMargenTotal.Escenario {
		confianza = confianza.Add(confianzaExtra)
	}
	if len(viables) < len(resultados) {
		confianza = confianza.Sub(confianzaCastigo)
	}
	if confianza.LessThan(confianzaMin) {
		confianza = confianzaMin
	}
	if confianza.GreaterThan(confianzaMax) {
		confianza = confianzaMax
	}

	razon := fmt.Sprintf("%q ofrece el mejor margen por plaza-día (%s €/plaza/día) con un margen total de %s €",
		mejor.Nombre, mejor.MargenPorPlazaDia.StringFixed(2), mejor.MargenTotal.StringFixed(2))

	return Recomendacion{Escenario: mejor.Escenario, Razon: razon, Confianza: confianza}
}
