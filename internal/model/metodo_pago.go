package model

import "github.com/google/uuid"

// MetodoPago catalogues accepted payment methods instead of a fixed list.
// EsBolivares marks methods whose amounts arrive in local currency and must
// be converted with the daily rate before reconciling a sale.
type MetodoPago struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	EsBolivares bool      `gorm:"not null;default:false"`
}

func (MetodoPago) TableName() string { return "metodos_pago" }
