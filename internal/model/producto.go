package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de producto. Only TipoAguaLitros draws volume from the cistern ledger
// when sold; everything else is plain stock.
const (
	TipoArticulosExtra = "articulos_extra"
	TipoAguaLitros     = "agua_litros"
	TipoBotella20L     = "botella_20l"
	TipoBotella10L     = "botella_10l"
	TipoBotella5L      = "botella_5l"
)

// Producto unifies every sellable item or service, priced in both currencies.
type Producto struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo          string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	Nombre          string          `gorm:"index;not null"`
	PrecioDivisa    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioBolivares decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Tipo            string          `gorm:"type:varchar(20);not null;default:'agua_litros'"`
	Stock           int             `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Producto) TableName() string { return "productos" }
