package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
)

type CisternaRepository interface {
	Create(ctx context.Context, c *model.Cisterna) error
	// Ultima returns the newest ledger entry by (fecha, hora).
	Ultima(ctx context.Context) (*model.Cisterna, error)
	List(ctx context.Context, limit int) ([]model.Cisterna, error)

	// DescontarLitrosTx decrements the entry's running balance only if enough
	// liters remain. Returns false when the guard fails, so concurrent sales
	// cannot drive the balance negative.
	DescontarLitrosTx(tx *gorm.DB, id uuid.UUID, litros decimal.Decimal) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type cisternaRepo struct{ db *gorm.DB }

func NewCisternaRepository(db *gorm.DB) CisternaRepository { return &cisternaRepo{db: db} }

func (r *cisternaRepo) DB() *gorm.DB { return r.db }

func (r *cisternaRepo) Create(ctx context.Context, c *model.Cisterna) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cisternaRepo) Ultima(ctx context.Context) (*model.Cisterna, error) {
	var c model.Cisterna
	err := r.db.WithContext(ctx).Order("fecha DESC, hora DESC").First(&c).Error
	return &c, err
}

func (r *cisternaRepo) List(ctx context.Context, limit int) ([]model.Cisterna, error) {
	var entradas []model.Cisterna
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Order("fecha DESC, hora DESC").
		Limit(limit).
		Find(&entradas).Error
	return entradas, err
}

func (r *cisternaRepo) DescontarLitrosTx(tx *gorm.DB, id uuid.UUID, litros decimal.Decimal) (bool, error) {
	res := tx.Model(&model.Cisterna{}).
		Where("id = ? AND litros_disponibles >= ?", id, litros).
		Update("litros_disponibles", gorm.Expr("litros_disponibles - ?", litros))
	return res.RowsAffected > 0, res.Error
}
