package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
)

type TasaCambioRepository interface {
	Create(ctx context.Context, t *model.TasaCambio) error
	FindByFecha(ctx context.Context, fecha time.Time) (*model.TasaCambio, error)
	// Vigente returns the newest rate with fecha <= the given day, which is
	// the rate in effect for that day.
	Vigente(ctx context.Context, fecha time.Time) (*model.TasaCambio, error)
	ListRecientes(ctx context.Context, limit int) ([]model.TasaCambio, error)
}

type tasaRepo struct{ db *gorm.DB }

func NewTasaCambioRepository(db *gorm.DB) TasaCambioRepository { return &tasaRepo{db: db} }

func (r *tasaRepo) Create(ctx context.Context, t *model.TasaCambio) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tasaRepo) FindByFecha(ctx context.Context, fecha time.Time) (*model.TasaCambio, error) {
	var t model.TasaCambio
	err := r.db.WithContext(ctx).Where("fecha = ?", fecha.Format("2006-01-02")).First(&t).Error
	return &t, err
}

func (r *tasaRepo) Vigente(ctx context.Context, fecha time.Time) (*model.TasaCambio, error) {
	var t model.TasaCambio
	err := r.db.WithContext(ctx).
		Where("fecha <= ?", fecha.Format("2006-01-02")).
		Order("fecha DESC").
		First(&t).Error
	return &t, err
}

func (r *tasaRepo) ListRecientes(ctx context.Context, limit int) ([]model.TasaCambio, error) {
	var tasas []model.TasaCambio
	err := r.db.WithContext(ctx).
		Preload("Usuario").
		Order("fecha DESC").
		Limit(limit).
		Find(&tasas).Error
	return tasas, err
}
