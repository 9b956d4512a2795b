package mercado

import (
	"time"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

// Weekly reference quotes used when neither the feed nor the stored history
// can serve a request. Oldest first; roughly a quarter of Mercolleida-style
// quotations per product.
var seriesReferencia = map[models.ProductoMercado][]string{
	models.ProductoCebado:   {"1.52", "1.50", "1.49", "1.47", "1.46", "1.45", "1.44", "1.45", "1.46", "1.45", "1.44", "1.45"},
	models.ProductoLechon20: {"62.00", "61.50", "60.00", "59.50", "59.00", "58.50", "58.00", "58.50", "59.00", "58.50", "58.00", "58.50"},
	models.ProductoLechon7:  {"3.55", "3.52", "3.50", "3.48", "3.46", "3.45", "3.44", "3.45", "3.47", "3.46", "3.45", "3.50"},
	models.ProductoPienso:   {"318.00", "316.00", "314.00", "312.00", "310.00", "309.00", "308.00", "307.00", "306.00", "305.00", "305.00", "305.00"},
}

// serieReferencia materializes the seeded series for a product as weekly
// points ending on the Monday of the current week.
func serieReferencia(producto models.ProductoMercado, ahora time.Time) []models.PuntoPrecio {
	valores := seriesReferencia[producto]
	lunes := lunesActual(ahora)
	serie := make([]models.PuntoPrecio, 0, len(valores))
	for i, valor := range valores {
		serie = append(serie, models.PuntoPrecio{
			Producto: producto,
			Fecha:    lunes.AddDate(0, 0, -7*(len(valores)-1-i)),
			Precio:   valor,
			Fuente:   "referencia",
		})
	}
	return serie
}

// preciosReferencia builds a current quote sheet from the tail of each series.
func preciosReferencia(ahora time.Time) *models.PreciosMercado {
	ultimo := func(producto models.ProductoMercado) float64 {
		serie := seriesReferencia[producto]
		v, _ := parsePrecio(serie[len(serie)-1])
		return v
	}
	return &models.PreciosMercado{
		Cebado:   ultimo(models.ProductoCebado),
		Lechon20: ultimo(models.ProductoLechon20),
		Lechon7:  ultimo(models.ProductoLechon7),
		Pienso:   ultimo(models.ProductoPienso),
		Fecha:    ahora,
		Fuente:   "referencia",
	}
}

func noticiasReferencia(ahora time.Time) []models.Noticia {
	return []models.Noticia{
		{
			Titulo:  "El cebado se mantiene estable en la lonja semanal",
			Fuente:  "Lonja de referencia",
			Fecha:   ahora.AddDate(0, 0, -2),
			Resumen: "La cotización del cerdo cebado repite por tercera semana consecutiva con matanza alta y pesos contenidos.",
		},
		{
			Titulo:  "El lechón de 20 kg encadena dos semanas de ligera subida",
			Fuente:  "Lonja de referencia",
			Fecha:   ahora.AddDate(0, 0, -7),
			Resumen: "La demanda de plazas de transición sostiene el precio del lechón pese al aumento de la oferta.",
		},
		{
			Titulo:  "El pienso de engorde se abarata por la cosecha de cereal",
			Fuente:  "Lonja de referencia",
			Fecha:   ahora.AddDate(0, 0, -9),
			Resumen: "La entrada de cereal nuevo relaja los costes de alimentación de cara al último tramo del año.",
		},
	}
}

// lunesActual returns midnight UTC of the Monday of the current week, with
// Sunday counting as day 7.
func lunesActual(t time.Time) time.Time {
	t = t.UTC()
	dia := int(t.Weekday())
	if dia == 0 {
		dia = 7
	}
	lunes := t.AddDate(0, 0, 1-dia)
	return time.Date(lunes.Year(), lunes.Month(), lunes.Day(), 0, 0, 0, 0, time.UTC)
}
