package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TasaCambio is the daily USD to Bs conversion rate.
// At most one row per calendar date; rows are never deleted. The rate in
// effect for a day D is the newest row with fecha <= D.
type TasaCambio struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha     time.Time       `gorm:"type:date;uniqueIndex;not null"`
	TasaBsd   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UsuarioID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (TasaCambio) TableName() string { return "tasas_cambio" }
