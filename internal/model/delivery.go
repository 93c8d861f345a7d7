package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Delivery logs one water delivery to a customer address.
type Delivery struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha            time.Time       `gorm:"type:date;not null;index"`
	Hora             string          `gorm:"type:time;not null"`
	NombreCliente    string          `gorm:"not null"`
	Direccion        string          `gorm:"not null"`
	LitrosEntregados decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	EncargadoID      *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt        time.Time

	Encargado *Usuario `gorm:"foreignKey:EncargadoID"`
}

func (Delivery) TableName() string { return "deliveries" }
