package crm

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

type repoStub struct {
	clientes  []models.Cliente
	ofertas   []models.Oferta
	actividad []models.ActividadLog
}

func (r *repoStub) CreateCliente(_ context.Context, cliente models.Cliente) (models.Cliente, error) {
	cliente.ID = "c-1"
	r.clientes = append(r.clientes, cliente)
	return cliente, nil
}

func (r *repoStub) GetClientes(context.Context, models.ClientesFiltros) ([]models.Cliente, error) {
	return r.clientes, nil
}

func (r *repoStub) GetClientePorID(_ context.Context, id string) (*models.Cliente, error) {
	for _, c := range r.clientes {
		if c.ID == id {
			cliente := c
			return &cliente, nil
		}
	}
	return nil, nil
}

func (r *repoStub) UpdateCliente(context.Context, models.Cliente) error { return nil }
func (r *repoStub) DeleteCliente(context.Context, string) error         { return nil }

func (r *repoStub) CreateOferta(_ context.Context, oferta models.Oferta) (models.Oferta, error) {
	oferta.ID = "o-1"
	r.ofertas = append(r.ofertas, oferta)
	return oferta, nil
}

func (r *repoStub) GetOfertas(context.Context, string, string) ([]models.Oferta, error) {
	return r.ofertas, nil
}

func (r *repoStub) GetOfertaPorID(_ context.Context, id string) (*models.Oferta, error) {
	for _, o := range r.ofertas {
		if o.ID == id {
			oferta := o
			return &oferta, nil
		}
	}
	return nil, nil
}

func (r *repoStub) UpdateOferta(_ context.Context, oferta models.Oferta) error {
	for i, o := range r.ofertas {
		if o.ID == oferta.ID {
			r.ofertas[i] = oferta
		}
	}
	return nil
}

func (r *repoStub) LogActividad(_ context.Context, entrada models.ActividadLog) error {
	r.actividad = append(r.actividad, entrada)
	return nil
}

type leadsStub struct {
	leads []models.Cliente
}

func (l *leadsStub) ReadLeads(context.Context) ([]models.Cliente, error) {
	return l.leads, nil
}

func TestCrearClienteAplicaDefectos(t *testing.T) {
	repo := &repoStub{}
	svc := NewService(repo, nil, nil, nil)

	creado, err := svc.CrearCliente(context.Background(), models.Cliente{Nombre: "Matadero Ebro"})
	require.NoError(t, err)

	assert.Equal(t, models.EstadoClienteNuevo, creado.Estado)
	assert.Equal(t, models.PrioridadMedia, creado.Prioridad)
	assert.Equal(t, models.TipoClienteOtro, creado.TipoCliente)
	require.Len(t, repo.actividad, 1)
	assert.Equal(t, "cliente_creado", repo.actividad[0].Tipo)
}

func TestCrearClienteSinNombre(t *testing.T) {
	svc := NewService(&repoStub{}, nil, nil, nil)

	_, err := svc.CrearCliente(context.Background(), models.Cliente{})
	require.Error(t, err)
}

func TestImportarLeadsSinFuente(t *testing.T) {
	svc := NewService(&repoStub{}, nil, nil, nil)

	_, err := svc.ImportarLeads(context.Background())
	require.ErrorIs(t, err, ErrImportacionDeshabilitada)
}

func TestImportarLeadsDeduplica(t *testing.T) {
	repo := &repoStub{clientes: []models.Cliente{
		{ID: "c-0", Nombre: "Cárnicas Norte", Email: "compras@carnicasnorte.es"},
	}}
	leads := &leadsStub{leads: []models.Cliente{
		{Nombre: "Cárnicas Norte SL", Email: "COMPRAS@carnicasnorte.es"},
		{Nombre: "Matadero Ebro", Email: "info@mataderoebro.es"},
		{Nombre: "cárnicas norte"},
	}}
	svc := NewService(repo, leads, nil, nil)

	resultado, err := svc.ImportarLeads(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resultado.Importados)
	assert.Equal(t, 2, resultado.Omitidos)
}

func TestImportarClientes(t *testing.T) {
	repo := &repoStub{clientes: []models.Cliente{
		{ID: "c-0", Nombre: "Cárnicas Norte", Email: "compras@carnicasnorte.es"},
	}}
	svc := NewService(repo, nil, nil, nil)

	resultado, err := svc.ImportarClientes(context.Background(), []models.Cliente{
		{Nombre: "Matadero Ebro", Email: "info@mataderoebro.es"},
		{Nombre: "Cárnicas Norte", Email: "compras@carnicasnorte.es"},
		{Nombre: "   "},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resultado.Importados)
	assert.Equal(t, 2, resultado.Omitidos)

	// Imported rows pick up pipeline defaults.
	importado := repo.clientes[len(repo.clientes)-1]
	assert.Equal(t, models.EstadoClienteNuevo, importado.Estado)
	assert.Equal(t, "importacion", importado.OrigenCliente)
}

func TestCrearOferta(t *testing.T) {
	repo := &repoStub{clientes: []models.Cliente{{ID: "c-1", Nombre: "Matadero Ebro"}}}
	svc := NewService(repo, nil, nil, nil)

	creada, err := svc.CrearOferta(context.Background(), models.Oferta{
		ClienteID:    "c-1",
		Escenario:    models.EscenarioCebo,
		NumAnimales:  200,
		PesoEstimado: "105",
		PrecioKg:     "1.45",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^VP-\d{4}-[0-9A-F]{6}$`), creada.Codigo)
	assert.Equal(t, models.EstadoOfertaBorrador, creada.Estado)
	// 1.45 × 105 × 200.
	assert.Equal(t, "30450", creada.PrecioTotal)
}

func TestCrearOfertaClienteInexistente(t *testing.T) {
	svc := NewService(&repoStub{}, nil, nil, nil)

	_, err := svc.CrearOferta(context.Background(), models.Oferta{
		ClienteID:   "fantasma",
		Escenario:   models.EscenarioCebo,
		NumAnimales: 10,
	})
	require.ErrorIs(t, err, ErrNoEncontrado)
}

func TestEnviarOferta(t *testing.T) {
	repo := &repoStub{
		clientes: []models.Cliente{{ID: "c-1", Nombre: "Matadero Ebro"}},
		ofertas: []models.Oferta{{
			ID:     "o-1",
			Codigo: "VP-2609-ABCDEF",
			Estado: models.EstadoOfertaBorrador,
		}},
	}
	svc := NewService(repo, nil, nil, nil)

	enviada, err := svc.EnviarOferta(context.Background(), "o-1")
	require.NoError(t, err)

	assert.Equal(t, models.EstadoOfertaEnviada, enviada.Estado)
	assert.True(t, enviada.EmailEnviado)
	require.NotNil(t, enviada.FechaEnvio)
	assert.WithinDuration(t, time.Now().UTC(), *enviada.FechaEnvio, time.Minute)

	// Re-sending a sent offer is rejected.
	_, err = svc.EnviarOferta(context.Background(), "o-1")
	require.Error(t, err)
}
