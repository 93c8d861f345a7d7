package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de venta. Promotion registrations and bottle redemptions create
// zero-total "promocion" rows so they appear in sales history; they are audit
// entries, not financial transactions.
const (
	VentaNormal    = "normal"
	VentaPromocion = "promocion"
)

// Venta is an immutable point-of-sale transaction. Totals are carried in both
// currencies together with the rate used, so historical rows stay correct
// when the daily rate changes. Invariant: total_bs = total_divisa * tasa_usada.
type Venta struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Fecha       time.Time       `gorm:"not null;index"`
	TotalDivisa decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalBs     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TasaUsada   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TipoVenta   string          `gorm:"type:varchar(20);not null;default:'normal'"`
	CreatedAt   time.Time

	Usuario *Usuario    `gorm:"foreignKey:UsuarioID"`
	Items   []ItemVenta `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Pagos   []PagoVenta `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// ItemVenta is one cart line of a Venta. The product reference is
// delete-protected: a product cannot be removed while sold items point at it.
type ItemVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;constraint:OnDelete:RESTRICT"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SubtotalDivisa decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SubtotalBs     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (ItemVenta) TableName() string { return "items_venta" }

// PagoVenta is one payment applied to a Venta, in the method's own currency.
type PagoVenta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MetodoPagoID uuid.UUID       `gorm:"type:uuid;not null;constraint:OnDelete:RESTRICT"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	MetodoPago *MetodoPago `gorm:"foreignKey:MetodoPagoID"`
}

func (PagoVenta) TableName() string { return "pagos_venta" }
