package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promocion is a prepaid bottle credit for a customer.
// Invariant: 0 <= botellas_retiradas <= botellas_pagadas, enforced with a
// conditional UPDATE at redemption time.
type Promocion struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string          `gorm:"not null"`
	Telefono          string          `gorm:"type:varchar(20);not null"`
	CantidadDivisa    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	BotellasPagadas   int             `gorm:"not null;default:0"`
	BotellasRetiradas int             `gorm:"not null;default:0"`
	UsuarioID         *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt         time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (Promocion) TableName() string { return "promociones" }

// BotellasPendientes is the derived credit still owed to the customer.
func (p *Promocion) BotellasPendientes() int {
	return p.BotellasPagadas - p.BotellasRetiradas
}
