package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
)

type PromocionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Promocion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Promocion, error)
	List(ctx context.Context) ([]model.Promocion, error)
	ListPendientes(ctx context.Context) ([]model.Promocion, error)

	// RetirarBotellaTx increments botellas_retiradas only while credit
	// remains. Returns false when the customer has no bottles pending, so two
	// concurrent redemptions of the last bottle cannot both succeed.
	RetirarBotellaTx(tx *gorm.DB, id uuid.UUID) (bool, error)

	DB() *gorm.DB
}

type promocionRepo struct{ db *gorm.DB }

func NewPromocionRepository(db *gorm.DB) PromocionRepository { return &promocionRepo{db: db} }

func (r *promocionRepo) DB() *gorm.DB { return r.db }

func (r *promocionRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Promocion) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *promocionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Promocion, error) {
	var p model.Promocion
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *promocionRepo) List(ctx context.Context) ([]model.Promocion, error) {
	var promos []model.Promocion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&promos).Error
	return promos, err
}

func (r *promocionRepo) ListPendientes(ctx context.Context) ([]model.Promocion, error) {
	var promos []model.Promocion
	err := r.db.WithContext(ctx).
		Where("botellas_retiradas < botellas_pagadas").
		Order("created_at DESC").
		Find(&promos).Error
	return promos, err
}

func (r *promocionRepo) RetirarBotellaTx(tx *gorm.DB, id uuid.UUID) (bool, error) {
	res := tx.Model(&model.Promocion{}).
		Where("id = ? AND botellas_retiradas < botellas_pagadas", id).
		Update("botellas_retiradas", gorm.Expr("botellas_retiradas + 1"))
	return res.RowsAffected > 0, res.Error
}
