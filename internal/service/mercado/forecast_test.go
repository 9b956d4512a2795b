package mercado

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

func serie(precios ...string) []models.PuntoPrecio {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	puntos := make([]models.PuntoPrecio, 0, len(precios))
	for i, precio := range precios {
		puntos = append(puntos, models.PuntoPrecio{
			Producto: models.ProductoCebado,
			Fecha:    base.AddDate(0, 0, 7*i),
			Precio:   precio,
		})
	}
	return puntos
}

func TestEstimarPrecioHistoricoInsuficiente(t *testing.T) {
	_, err := EstimarPrecio(models.ProductoCebado, nil, 4)
	require.ErrorIs(t, err, ErrHistoricoInsuficiente)

	_, err = EstimarPrecio(models.ProductoCebado, serie("1.45"), 4)
	require.ErrorIs(t, err, ErrHistoricoInsuficiente)
}

func TestEstimarPrecioSerieConstante(t *testing.T) {
	est, err := EstimarPrecio(models.ProductoCebado, serie("2.00", "2.00", "2.00", "2.00", "2.00", "2.00", "2.00", "2.00"), 4)
	require.NoError(t, err)

	assert.Equal(t, 2.0, est.MediaPonderada)
	assert.Equal(t, 0.0, est.Tendencia)
	assert.Equal(t, 2.0, est.PrecioEstimado)
	assert.Equal(t, 4, est.SemanasAdelante)
	assert.Equal(t, models.ProductoCebado, est.Producto)
}

func TestEstimarPrecioTendenciaAlcista(t *testing.T) {
	est, err := EstimarPrecio(models.ProductoCebado, serie("1.00", "2.00", "3.00", "4.00", "5.00", "6.00", "7.00", "8.00"), 4)
	require.NoError(t, err)

	// Rank-weighted mean of 1..8 is 204/36.
	assert.InDelta(t, 5.6667, est.MediaPonderada, 0.0001)
	assert.InDelta(t, 1.0, est.Tendencia, 0.0001)
	assert.InDelta(t, 9.6667, est.PrecioEstimado, 0.0001)
	assert.Equal(t, 0.65, est.Confianza)
}

func TestEstimarPrecioUsaSoloLaVentana(t *testing.T) {
	// The two leading outliers fall outside the trailing window of 8.
	precios := append([]string{"900.00", "900.00"}, "2.00", "2.00", "2.00", "2.00", "2.00", "2.00", "2.00", "2.00")
	est, err := EstimarPrecio(models.ProductoCebado, serie(precios...), 2)
	require.NoError(t, err)

	assert.Equal(t, 2.0, est.MediaPonderada)
	assert.Equal(t, 2.0, est.PrecioEstimado)
}

func TestEstimarPrecioNuncaNegativo(t *testing.T) {
	est, err := EstimarPrecio(models.ProductoCebado, serie("8.00", "7.00", "6.00", "5.00", "4.00", "3.00", "2.00", "1.00"), 8)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, est.Tendencia, 0.0001)
	assert.Less(t, est.MediaPonderada, 8.0)
	assert.Equal(t, 0.0, est.PrecioEstimado)
}

func TestEstimarPrecioIgnoraPuntosCorruptos(t *testing.T) {
	puntos := serie("2.00", "2.00", "2.00")
	puntos = append(puntos, models.PuntoPrecio{Producto: models.ProductoCebado, Precio: "n/a"})

	est, err := EstimarPrecio(models.ProductoCebado, puntos, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, est.PrecioEstimado)
}

func TestConfianzaDecaeLinealmente(t *testing.T) {
	assert.Equal(t, 0.80, Confianza(1))
	assert.Equal(t, 0.75, Confianza(2))
	assert.Equal(t, 0.65, Confianza(4))
	assert.Equal(t, 0.45, Confianza(8))
}

func TestConfianzaAcotada(t *testing.T) {
	// Floor at 0.10 from 15 weeks onward.
	assert.Equal(t, 0.10, Confianza(15))
	assert.Equal(t, 0.10, Confianza(26))
	// Cap keeps degenerate horizons below 0.95.
	assert.Equal(t, 0.85, Confianza(0))
	assert.LessOrEqual(t, Confianza(-10), 0.95)
}

func TestConfianzaMonotonaNoCreciente(t *testing.T) {
	anterior := Confianza(1)
	for semanas := 2; semanas <= 26; semanas++ {
		actual := Confianza(semanas)
		assert.LessOrEqual(t, actual, anterior, "semana %d", semanas)
		anterior = actual
	}
}
