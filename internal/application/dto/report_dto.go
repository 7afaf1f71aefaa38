package dto

import "time"

// CollectionReport datos del reporte PDF de la colección.
type CollectionReport struct {
	Title        string
	GeneratedAt  time.Time
	Wines        []WineResponse
	TotalBottles int
}
