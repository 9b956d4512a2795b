package models

import "time"

// ProductoMercado identifies a quoted market product.
type ProductoMercado string

const (
	// ProductoCebado is the finished pig quote, €/kg live weight.
	ProductoCebado ProductoMercado = "cebado"
	// ProductoLechon20 is the 20 kg piglet quote, €/animal.
	ProductoLechon20 ProductoMercado = "lechon20"
	// ProductoLechon7 is the early-weaning piglet quote, €/kg.
	ProductoLechon7 ProductoMercado = "lechon7"
	// ProductoPienso is the feed quote, €/t.
	ProductoPienso ProductoMercado = "pienso"
)

// ProductosMercado lists the quoted products in display order.
var ProductosMercado = []ProductoMercado{ProductoCebado, ProductoLechon20, ProductoLechon7, ProductoPienso}

// Valido reports whether p is a known market product.
func (p ProductoMercado) Valido() bool {
	switch p {
	case ProductoCebado, ProductoLechon20, ProductoLechon7, ProductoPienso:
		return true
	}
	return false
}

// PuntoPrecio is one observed price for a product. The price is an exact
// decimal string, matching how history records store monetary values.
type PuntoPrecio struct {
	ID       string          `bson:"_id,omitempty" json:"-"`
	Producto ProductoMercado `bson:"producto" json:"producto"`
	Fecha    time.Time       `bson:"fecha" json:"fecha"`
	Precio   string          `bson:"precio" json:"precio"`
	Fuente   string          `bson:"fuente,omitempty" json:"fuente,omitempty"`
}

// PreciosMercado is the current quote sheet.
type PreciosMercado struct {
	Cebado   float64   `json:"cebado"`
	Lechon20 float64   `json:"lechon20"`
	Lechon7  float64   `json:"lechon7"`
	Pienso   float64   `json:"pienso"`
	Fecha    time.Time `json:"fecha"`
	Fuente   string    `json:"fuente"`
}

// Noticia is one sector news item.
type Noticia struct {
	Titulo  string    `json:"titulo"`
	Fuente  string    `json:"fuente"`
	Fecha   time.Time `json:"fecha"`
	Resumen string    `json:"resumen"`
	URL     string    `json:"url,omitempty"`
}
