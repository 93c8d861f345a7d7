package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemCarritoRequest is one cart line of POST /v1/ventas. Cantidad is a
// decimal because bulk water is sold by the liter.
type ItemCarritoRequest struct {
	Codigo   string          `json:"codigo"   validate:"required"`
	Cantidad decimal.Decimal `json:"cantidad" validate:"required,gt=0"`
}

// PagoRequest is one payment line, stated in the method's own currency.
type PagoRequest struct {
	MetodoPago string          `json:"metodo_pago" validate:"required"`
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
}

type RegistrarVentaRequest struct {
	Items []ItemCarritoRequest `json:"items" validate:"required,min=1,dive"`
	Pagos []PagoRequest        `json:"pagos" validate:"required,min=1,dive"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD; empty = no lower bound
	Hasta string `form:"hasta"` // YYYY-MM-DD; empty = no upper bound
	Tipo  string `form:"tipo"`  // normal | promocion | all (default all)
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ──────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	Codigo         string          `json:"codigo"`
	Nombre         string          `json:"nombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	SubtotalDivisa decimal.Decimal `json:"subtotal_divisa"`
	SubtotalBs     decimal.Decimal `json:"subtotal_bs"`
}

type PagoVentaResponse struct {
	MetodoPago string          `json:"metodo_pago"`
	Monto      decimal.Decimal `json:"monto"`
}

type VentaResponse struct {
	ID          string              `json:"id"`
	Fecha       string              `json:"fecha"`
	Usuario     string              `json:"usuario"`
	TotalDivisa decimal.Decimal     `json:"total_divisa"`
	TotalBs     decimal.Decimal     `json:"total_bs"`
	TasaUsada   decimal.Decimal     `json:"tasa_usada"`
	TipoVenta   string              `json:"tipo_venta"`
	Items       []ItemVentaResponse `json:"items"`
	Pagos       []PagoVentaResponse `json:"pagos"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
