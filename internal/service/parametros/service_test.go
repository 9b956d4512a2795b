package parametros

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferrandiz/ventipro/internal/domain/models"
)

type repoStub struct {
	snapshots []models.ParametrosEconomicos
	actividad []models.ActividadLog
}

func (r *repoStub) CreateParametros(_ context.Context, params models.ParametrosEconomicos) (models.ParametrosEconomicos, error) {
	if params.Activo {
		for i := range r.snapshots {
			r.snapshots[i].Activo = false
		}
	}
	params.ID = "p-1"
	r.snapshots = append(r.snapshots, params)
	return params, nil
}

func (r *repoStub) GetParametrosActivos(context.Context) (*models.ParametrosEconomicos, error) {
	for _, p := range r.snapshots {
		if p.Activo {
			params := p
			return &params, nil
		}
	}
	return nil, nil
}

func (r *repoStub) GetParametrosPorID(_ context.Context, id string) (*models.ParametrosEconomicos, error) {
	for _, p := range r.snapshots {
		if p.ID == id {
			params := p
			return &params, nil
		}
	}
	return nil, nil
}

func (r *repoStub) ListParametros(context.Context) ([]models.ParametrosEconomicos, error) {
	return r.snapshots, nil
}

func (r *repoStub) ReplaceParametros(_ context.Context, params models.ParametrosEconomicos) error {
	for i, p := range r.snapshots {
		if params.Activo && p.ID != params.ID {
			r.snapshots[i].Activo = false
		}
		if p.ID == params.ID {
			r.snapshots[i] = params
		}
	}
	return nil
}

func (r *repoStub) LogActividad(_ context.Context, entrada models.ActividadLog) error {
	r.actividad = append(r.actividad, entrada)
	return nil
}

func TestActivosSinSnapshotDevuelveDefectos(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	params, err := svc.Activos(context.Background())
	require.NoError(t, err)
	assert.False(t, params.Activo)
	assert.Equal(t, "Parámetros por defecto", params.Nombre)
}

func TestCrearActivaElSnapshot(t *testing.T) {
	repo := &repoStub{}
	svc := NewService(repo, nil)

	creados, err := svc.Crear(context.Background(), models.ParametrosPorDefecto())
	require.NoError(t, err)
	assert.True(t, creados.Activo)

	activos, err := svc.Activos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, creados.ID, activos.ID)
}

func TestCrearRechazaSnapshotInvalido(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	invalidos := models.ParametrosPorDefecto()
	delete(invalidos.Escenarios, models.EscenarioCebo)

	_, err := svc.Crear(context.Background(), invalidos)
	require.Error(t, err)
}

func TestActualizarNoEncontrado(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	params := models.ParametrosPorDefecto()
	params.ID = "fantasma"

	_, err := svc.Actualizar(context.Background(), params)
	require.ErrorIs(t, err, ErrNoEncontrado)
}

func TestActivarCambiaElSnapshotActivo(t *testing.T) {
	repo := &repoStub{snapshots: []models.ParametrosEconomicos{
		func() models.ParametrosEconomicos {
			p := models.ParametrosPorDefecto()
			p.ID = "p-a"
			p.Activo = true
			return p
		}(),
		func() models.ParametrosEconomicos {
			p := models.ParametrosPorDefecto()
			p.ID = "p-b"
			return p
		}(),
	}}
	svc := NewService(repo, nil)

	activados, err := svc.Activar(context.Background(), "p-b")
	require.NoError(t, err)
	assert.True(t, activados.Activo)

	activos, err := svc.Activos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p-b", activos.ID)
}

func TestActivarNoEncontrado(t *testing.T) {
	svc := NewService(&repoStub{}, nil)

	_, err := svc.Activar(context.Background(), "fantasma")
	require.ErrorIs(t, err, ErrNoEncontrado)
}
