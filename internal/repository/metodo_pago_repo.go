package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
)

type MetodoPagoRepository interface {
	FindByNombre(ctx context.Context, nombre string) (*model.MetodoPago, error)
	List(ctx context.Context) ([]model.MetodoPago, error)
	// SeedDefaults inserts the stock payment methods if missing. Idempotent.
	SeedDefaults(ctx context.Context) error
}

type metodoPagoRepo struct{ db *gorm.DB }

func NewMetodoPagoRepository(db *gorm.DB) MetodoPagoRepository { return &metodoPagoRepo{db: db} }

func (r *metodoPagoRepo) FindByNombre(ctx context.Context, nombre string) (*model.MetodoPago, error) {
	var m model.MetodoPago
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&m).Error
	return &m, err
}

func (r *metodoPagoRepo) List(ctx context.Context) ([]model.MetodoPago, error) {
	var metodos []model.MetodoPago
	err := r.db.WithContext(ctx).Order("nombre").Find(&metodos).Error
	return metodos, err
}

func (r *metodoPagoRepo) SeedDefaults(ctx context.Context) error {
	defaults := []model.MetodoPago{
		{Nombre: "Tarjeta de Débito BsD", EsBolivares: true},
		{Nombre: "Tarjeta de Crédito BsD", EsBolivares: true},
		{Nombre: "Efectivo BsD", EsBolivares: true},
		{Nombre: "Divisa $", EsBolivares: false},
		{Nombre: "Transferencia", EsBolivares: true},
		{Nombre: "Pago Móvil", EsBolivares: true},
	}
	for i := range defaults {
		err := r.db.WithContext(ctx).
			Where("nombre = ?", defaults[i].Nombre).
			FirstOrCreate(&defaults[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}
