package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlazasLibresNuncaNegativas(t *testing.T) {
	assert.Equal(t, 300, Centro{PlazasTotales: 500, PlazasOcupadas: 200}.PlazasLibres())
	assert.Equal(t, 0, Centro{PlazasTotales: 500, PlazasOcupadas: 700}.PlazasLibres())
}

func TestPlazasCeboDisponiblesSoloCuentaEngorde(t *testing.T) {
	centros := []Centro{
		{Tipo: TipoCentroEngorde, PlazasTotales: 800, PlazasOcupadas: 300},
		{Tipo: TipoCentroEngorde, PlazasTotales: 400, PlazasOcupadas: 500},
		{Tipo: TipoCentroCria, PlazasTotales: 1000, PlazasOcupadas: 0},
	}

	// 500 free at the first site, the overbooked one clamps to zero and the
	// breeding site never counts.
	assert.Equal(t, 500, PlazasCeboDisponibles(centros))
	assert.Equal(t, 0, PlazasCeboDisponibles(nil))
}
