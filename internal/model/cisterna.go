package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cisterna is one entry of the append-only tank ledger. LitrosDisponibles is
// the running balance after this entry, fixed at creation time and never
// recomputed; the current availability is the balance of the newest entry by
// (fecha, hora). Sales and redemptions decrement the newest entry in place
// with a conditional relative UPDATE.
type Cisterna struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha             time.Time       `gorm:"type:date;not null;index:idx_cisternas_fecha_hora"`
	Hora              string          `gorm:"type:time;not null;index:idx_cisternas_fecha_hora"`
	Volumen           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LitrosDisponibles decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	UsuarioID         uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt         time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (Cisterna) TableName() string { return "cisternas" }
