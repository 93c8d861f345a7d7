package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Codigo          string          `json:"codigo"           validate:"required,max=20"`
	Nombre          string          `json:"nombre"           validate:"required"`
	PrecioDivisa    decimal.Decimal `json:"precio_divisa"    validate:"required,min=0"`
	PrecioBolivares decimal.Decimal `json:"precio_bolivares" validate:"min=0"`
	Tipo            string          `json:"tipo"             validate:"required,oneof=articulos_extra agua_litros botella_20l botella_10l botella_5l"`
	Stock           int             `json:"stock"            validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre          *string          `json:"nombre"`
	PrecioDivisa    *decimal.Decimal `json:"precio_divisa"    validate:"omitempty,min=0"`
	PrecioBolivares *decimal.Decimal `json:"precio_bolivares" validate:"omitempty,min=0"`
	Tipo            *string          `json:"tipo"             validate:"omitempty,oneof=articulos_extra agua_litros botella_20l botella_10l botella_5l"`
	Stock           *int             `json:"stock"            validate:"omitempty,min=0"`
}

type ProductoResponse struct {
	ID              string          `json:"id"`
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	PrecioDivisa    decimal.Decimal `json:"precio_divisa"`
	PrecioBolivares decimal.Decimal `json:"precio_bolivares"`
	Tipo            string          `json:"tipo"`
	Stock           int             `json:"stock"`
}

// PrecioResponse is the POS price lookup payload, served from the Redis
// cache when warm.
type PrecioResponse struct {
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	PrecioDivisa    decimal.Decimal `json:"precio_divisa"`
	PrecioBolivares decimal.Decimal `json:"precio_bolivares"`
	TasaDelDia      decimal.Decimal `json:"tasa_del_dia"`
}
