package dto

import "github.com/shopspring/decimal"

type RegistrarPromocionRequest struct {
	Nombre          string          `json:"nombre"           validate:"required"`
	Telefono        string          `json:"telefono"         validate:"required,max=20"`
	CantidadDivisa  decimal.Decimal `json:"cantidad_divisa"  validate:"required,gt=0"`
	BotellasPagadas int             `json:"botellas_pagadas" validate:"required,gt=0"`
}

type PromocionResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Telefono           string          `json:"telefono"`
	CantidadDivisa     decimal.Decimal `json:"cantidad_divisa"`
	BotellasPagadas    int             `json:"botellas_pagadas"`
	BotellasRetiradas  int             `json:"botellas_retiradas"`
	BotellasPendientes int             `json:"botellas_pendientes"`
	CreatedAt          string          `json:"created_at"`
}

// RetirarBotellaResponse returns the remaining credit so the POS screen can
// update without a second request.
type RetirarBotellaResponse struct {
	Success           bool `json:"success"`
	BotellasRestantes int  `json:"botellas_restantes"`
}
