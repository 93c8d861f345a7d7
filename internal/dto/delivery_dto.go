package dto

import "github.com/shopspring/decimal"

type RegistrarDeliveryRequest struct {
	Fecha            string          `json:"fecha"             validate:"required,datetime=2006-01-02"`
	Hora             string          `json:"hora"              validate:"required,datetime=15:04"`
	NombreCliente    string          `json:"nombre_cliente"    validate:"required"`
	Direccion        string          `json:"direccion"         validate:"required"`
	LitrosEntregados decimal.Decimal `json:"litros_entregados" validate:"required,gt=0"`
}

type DeliveryResponse struct {
	ID               string          `json:"id"`
	Fecha            string          `json:"fecha"`
	Hora             string          `json:"hora"`
	NombreCliente    string          `json:"nombre_cliente"`
	Direccion        string          `json:"direccion"`
	LitrosEntregados decimal.Decimal `json:"litros_entregados"`
	Encargado        string          `json:"encargado,omitempty"`
}
