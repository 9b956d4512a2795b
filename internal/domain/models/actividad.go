package models

import "time"

// ActividadLog is one append-only activity entry. Every mutating operation of
// the application records one.
type ActividadLog struct {
	ID          string         `bson:"_id,omitempty" json:"id"`
	Tipo        string         `bson:"tipo" json:"tipo"`
	Descripcion string         `bson:"descripcion" json:"descripcion"`
	Modulo      string         `bson:"modulo" json:"modulo"`
	Metadata    map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
	UserID      string         `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
}

// ActividadStats aggregates activity volume per module.
type ActividadStats struct {
	Total     int            `json:"total"`
	PorModulo map[string]int `json:"porModulo"`
}

// CalcularActividadStats counts log entries per module.
func CalcularActividadStats(entradas []ActividadLog) ActividadStats {
	stats := ActividadStats{Total: len(entradas), PorModulo: map[string]int{}}
	for _, e := range entradas {
		stats.PorModulo[e.Modulo]++
	}
	return stats
}
