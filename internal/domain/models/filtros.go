package models

import "time"

// HistorialFiltros narrows a history query. Zero values mean "no filter".
type HistorialFiltros struct {
	UserID               string
	LoteID               string
	EscenarioRecomendado Escenario
	FechaDesde           *time.Time
	FechaHasta           *time.Time
	Limit                int64
}

// ClientesFiltros narrows a CRM listing. Zero values mean "no filter".
type ClientesFiltros struct {
	Tipo      string
	Provincia string
	CCAA      string
	Estado    string
	Prioridad string
	Busqueda  string
}
