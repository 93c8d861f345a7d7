package dto

import "github.com/shopspring/decimal"

// ResumenDiario is the dashboard snapshot for one day. Cached in Redis and
// refreshed by the worker pool after each committed sale.
type ResumenDiario struct {
	Fecha             string           `json:"fecha"`
	TotalDivisa       decimal.Decimal  `json:"total_divisa"`
	TotalBs           decimal.Decimal  `json:"total_bs"`
	NumVentas         int64            `json:"num_ventas"`
	LitrosVendidos    decimal.Decimal  `json:"litros_vendidos"`
	LitrosDisponibles decimal.Decimal  `json:"litros_disponibles"`
	TasaDelDia        *decimal.Decimal `json:"tasa_del_dia,omitempty"`
}

// RecaudacionMetodo is revenue grouped by payment method, in the method's
// own currency.
type RecaudacionMetodo struct {
	MetodoPago  string          `json:"metodo_pago"`
	EsBolivares bool            `json:"es_bolivares"`
	Total       decimal.Decimal `json:"total"`
}

// VentaDia is one point of the sales-per-day series. Days without sales are
// filled with zeros so charts render gapless.
type VentaDia struct {
	Fecha       string          `json:"fecha"`
	TotalDivisa decimal.Decimal `json:"total_divisa"`
	TotalBs     decimal.Decimal `json:"total_bs"`
	NumVentas   int64           `json:"num_ventas"`
}

// ProductoVendido aggregates quantity and revenue per product in a range.
type ProductoVendido struct {
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	TotalDivisa decimal.Decimal `json:"total_divisa"`
}

// ControlReporte is the management report for an arbitrary date range.
type ControlReporte struct {
	Desde          string              `json:"desde"`
	Hasta          string              `json:"hasta"`
	TotalDivisa    decimal.Decimal     `json:"total_divisa"`
	TotalBs        decimal.Decimal     `json:"total_bs"`
	NumVentas      int64               `json:"num_ventas"`
	LitrosVendidos decimal.Decimal     `json:"litros_vendidos"`
	PorMetodo      []RecaudacionMetodo `json:"por_metodo"`
	PorDia         []VentaDia          `json:"por_dia"`
	PorProducto    []ProductoVendido   `json:"por_producto"`
}
