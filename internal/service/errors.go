package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business errors surfaced to the handler layer, which maps them onto HTTP
// status codes. Messages are user-facing and shown verbatim on the POS screen.
var (
	ErrCarritoVacio          = errors.New("el carrito esta vacio")
	ErrSinPagos              = errors.New("la venta no tiene pagos")
	ErrSinTasa               = errors.New("no hay tasa de cambio registrada para hoy")
	ErrSinCisterna           = errors.New("no hay entradas de cisterna registradas")
	ErrTasaDuplicada         = errors.New("ya existe una tasa registrada para esa fecha")
	ErrSinBotellasPendientes = errors.New("la promocion no tiene botellas pendientes")
	ErrPromocionNoEncontrada = errors.New("promocion no encontrada")
	ErrVentaNoEncontrada     = errors.New("venta no encontrada")
	ErrDeliveryNoEncontrado  = errors.New("delivery no encontrado")
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
)

// ProductoNoEncontradoError identifies the offending cart line by code.
type ProductoNoEncontradoError struct {
	Codigo string
}

func (e *ProductoNoEncontradoError) Error() string {
	return fmt.Sprintf("producto %s no encontrado", e.Codigo)
}

// MetodoPagoNoEncontradoError identifies the offending payment line by name.
type MetodoPagoNoEncontradoError struct {
	Nombre string
}

func (e *MetodoPagoNoEncontradoError) Error() string {
	return fmt.Sprintf("metodo de pago %s no reconocido", e.Nombre)
}

// LitrosInsuficientesError reports the tank shortfall for a rejected sale.
type LitrosInsuficientesError struct {
	Disponibles decimal.Decimal
	Solicitados decimal.Decimal
}

func (e *LitrosInsuficientesError) Error() string {
	return fmt.Sprintf("litros insuficientes en cisterna: disponibles %s, solicitados %s",
		e.Disponibles.StringFixed(2), e.Solicitados.StringFixed(2))
}

// PagoDescuadradoError reports by how much payments miss the sale total, in
// USD, after converting Bs payments with the daily rate.
type PagoDescuadradoError struct {
	Diferencia decimal.Decimal
}

func (e *PagoDescuadradoError) Error() string {
	return fmt.Sprintf("los pagos no cuadran con el total de la venta: diferencia de %s USD",
		e.Diferencia.StringFixed(2))
}
