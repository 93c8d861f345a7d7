package dto

import "github.com/shopspring/decimal"

type RegistrarTasaRequest struct {
	Fecha   string          `json:"fecha"    validate:"required,datetime=2006-01-02"`
	TasaBsd decimal.Decimal `json:"tasa_bsd" validate:"required,gt=0"`
}

type TasaResponse struct {
	ID      string          `json:"id"`
	Fecha   string          `json:"fecha"`
	TasaBsd decimal.Decimal `json:"tasa_bsd"`
	Usuario string          `json:"usuario,omitempty"`
}
