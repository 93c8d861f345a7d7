package dto

import "github.com/shopspring/decimal"

type RegistrarCisternaRequest struct {
	Fecha   string          `json:"fecha"   validate:"required,datetime=2006-01-02"`
	Hora    string          `json:"hora"    validate:"required,datetime=15:04"`
	Volumen decimal.Decimal `json:"volumen" validate:"min=0"` // 0 = checkpoint entry, no refill
}

type CisternaResponse struct {
	ID                string          `json:"id"`
	Fecha             string          `json:"fecha"`
	Hora              string          `json:"hora"`
	Volumen           decimal.Decimal `json:"volumen"`
	LitrosDisponibles decimal.Decimal `json:"litros_disponibles"`
	Usuario           string          `json:"usuario"`
}

// DisponibilidadResponse is the current tank balance shown on the POS screen.
type DisponibilidadResponse struct {
	LitrosDisponibles decimal.Decimal `json:"litros_disponibles"`
	UltimaEntrada     string          `json:"ultima_entrada,omitempty"`
}
