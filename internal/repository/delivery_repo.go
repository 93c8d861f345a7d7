package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
)

type DeliveryRepository interface {
	Create(ctx context.Context, d *model.Delivery) error
	List(ctx context.Context, desde, hasta time.Time, limit int) ([]model.Delivery, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type deliveryRepo struct{ db *gorm.DB }

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository { return &deliveryRepo{db: db} }

func (r *deliveryRepo) Create(ctx context.Context, d *model.Delivery) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *deliveryRepo) List(ctx context.Context, desde, hasta time.Time, limit int) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	q := r.db.WithContext(ctx).Preload("Encargado")
	if !desde.IsZero() {
		q = q.Where("fecha >= ?", desde.Format("2006-01-02"))
	}
	if !hasta.IsZero() {
		q = q.Where("fecha <= ?", hasta.Format("2006-01-02"))
	}
	err := q.Order("fecha DESC, hora DESC").Limit(limit).Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Delivery{}, id)
	return res.RowsAffected > 0, res.Error
}
