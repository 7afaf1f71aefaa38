package entity

import "github.com/shopspring/decimal"

// GrapeComposition una variedad de uva y su porcentaje dentro de un vino.
// Pertenece exclusivamente a su vino; se reemplaza completa en cada actualización.
type GrapeComposition struct {
	ID           string
	WineID       string
	GrapeVariety string
	Percentage   decimal.Decimal // 0..100, un decimal
	Position     int
}
