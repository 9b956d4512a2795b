package mercado

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

type feedStub struct {
	precios  *models.PreciosMercado
	noticias []models.Noticia
	err      error
}

func (f *feedStub) PreciosActuales(context.Context) (*models.PreciosMercado, error) {
	return f.precios, f.err
}

func (f *feedStub) Noticias(context.Context) ([]models.Noticia, error) {
	return f.noticias, f.err
}

type precioRepoStub struct {
	serie     []models.PuntoPrecio
	guardados []models.PuntoPrecio
}

func (r *precioRepoStub) GetHistoricoPrecios(_ context.Context, producto models.ProductoMercado, desde time.Time) ([]models.PuntoPrecio, error) {
	return r.serie, nil
}

func (r *precioRepoStub) SavePuntosPrecio(_ context.Context, puntos []models.PuntoPrecio) error {
	r.guardados = append(r.guardados, puntos...)
	return nil
}

func TestPreciosActualesDelFeed(t *testing.T) {
	quotes := &models.PreciosMercado{Cebado: 1.48, Fuente: "lonja"}
	svc := NewService(&feedStub{precios: quotes}, &precioRepoStub{}, nil)

	precios, err := svc.PreciosActuales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, quotes, precios)
}

func TestPreciosActualesFallbackReferencia(t *testing.T) {
	svc := NewService(&feedStub{err: errors.New("timeout")}, &precioRepoStub{}, nil)

	precios, err := svc.PreciosActuales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "referencia", precios.Fuente)
	assert.Greater(t, precios.Cebado, 0.0)
}

func TestPreciosActualesSinFeed(t *testing.T) {
	svc := NewService(nil, &precioRepoStub{}, nil)

	precios, err := svc.PreciosActuales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "referencia", precios.Fuente)
}

func TestHistoricoProductoNoValido(t *testing.T) {
	svc := NewService(nil, &precioRepoStub{}, nil)

	_, err := svc.Historico(context.Background(), models.ProductoMercado("vacuno"), 6)
	require.ErrorIs(t, err, ErrProductoNoValido)
}

func TestHistoricoFallbackReferencia(t *testing.T) {
	svc := NewService(nil, &precioRepoStub{}, nil)

	serie, err := svc.Historico(context.Background(), models.ProductoCebado, 6)
	require.NoError(t, err)
	require.NotEmpty(t, serie)
	for _, punto := range serie {
		assert.Equal(t, "referencia", punto.Fuente)
		assert.Equal(t, models.ProductoCebado, punto.Producto)
	}
	// Reference points land on consecutive Mondays.
	for i := 1; i < len(serie); i++ {
		assert.Equal(t, 7*24*time.Hour, serie[i].Fecha.Sub(serie[i-1].Fecha))
		assert.Equal(t, time.Monday, serie[i].Fecha.Weekday())
	}
}

func TestHistoricoPrefiereSerieAlmacenada(t *testing.T) {
	almacenada := []models.PuntoPrecio{
		{Producto: models.ProductoCebado, Precio: "1.45", Fuente: "lonja"},
		{Producto: models.ProductoCebado, Precio: "1.46", Fuente: "lonja"},
	}
	svc := NewService(nil, &precioRepoStub{serie: almacenada}, nil)

	serie, err := svc.Historico(context.Background(), models.ProductoCebado, 6)
	require.NoError(t, err)
	assert.Equal(t, almacenada, serie)
}

func TestEstimarHorizonteNoValido(t *testing.T) {
	svc := NewService(nil, &precioRepoStub{}, nil)

	_, err := svc.Estimar(context.Background(), models.ProductoCebado, 0)
	require.ErrorIs(t, err, ErrHorizonteNoValido)

	_, err = svc.Estimar(context.Background(), models.ProductoCebado, 27)
	require.ErrorIs(t, err, ErrHorizonteNoValido)
}

func TestEstimarSobreReferencia(t *testing.T) {
	svc := NewService(nil, &precioRepoStub{}, nil)

	est, err := svc.Estimar(context.Background(), models.ProductoLechon20, 4)
	require.NoError(t, err)
	assert.Equal(t, models.ProductoLechon20, est.Producto)
	assert.Equal(t, 0.65, est.Confianza)
	assert.Greater(t, est.PrecioEstimado, 0.0)
}

func TestRefrescarPreciosPersisteCuatroProductos(t *testing.T) {
	repo := &precioRepoStub{}
	feed := &feedStub{precios: &models.PreciosMercado{
		Cebado:   1.48,
		Lechon20: 59.5,
		Lechon7:  3.45,
		Pienso:   306,
		Fecha:    time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Fuente:   "lonja",
	}}
	svc := NewService(feed, repo, nil)

	_, err := svc.RefrescarPrecios(context.Background())
	require.NoError(t, err)
	require.Len(t, repo.guardados, 4)

	porProducto := map[models.ProductoMercado]models.PuntoPrecio{}
	for _, punto := range repo.guardados {
		porProducto[punto.Producto] = punto
	}
	assert.Equal(t, "1.48", porProducto[models.ProductoCebado].Precio)
	assert.Equal(t, "59.5", porProducto[models.ProductoLechon20].Precio)
	assert.Equal(t, "306", porProducto[models.ProductoPienso].Precio)
	assert.Equal(t, "lonja", porProducto[models.ProductoCebado].Fuente)
}

func TestRefrescarPreciosSinFeed(t *testing.T) {
	svc := NewService(nil, &precioRepoStub{}, nil)

	_, err := svc.RefrescarPrecios(context.Background())
	require.Error(t, err)
}

func TestNoticiasFallback(t *testing.T) {
	svc := NewService(&feedStub{err: errors.New("down")}, &precioRepoStub{}, nil)

	noticias, err := svc.Noticias(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, noticias)
}
