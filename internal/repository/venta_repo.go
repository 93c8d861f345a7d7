package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)

	// Report aggregates. Ranges are inclusive of desde and hasta.
	TotalesEnRango(ctx context.Context, desde, hasta time.Time) (totalDivisa, totalBs decimal.Decimal, numVentas int64, err error)
	LitrosVendidosEnRango(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
	RecaudacionPorMetodo(ctx context.Context, desde, hasta time.Time) ([]dto.RecaudacionMetodo, error)
	VentasPorDia(ctx context.Context, desde, hasta time.Time) ([]dto.VentaDia, error)
	ProductosVendidos(ctx context.Context, desde, hasta time.Time) ([]dto.ProductoVendido, error)
	ItemsEnRango(ctx context.Context, desde, hasta time.Time) ([]model.ItemVenta, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items.Producto").
		Preload("Pagos.MetodoPago").
		Preload("Usuario").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Desde != "" {
		q = q.Where("fecha >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("fecha < ?", filter.Hasta+" 23:59:59.999999")
	}
	switch filter.Tipo {
	case "", "all":
		// no filter
	default:
		q = q.Where("tipo_venta = ?", filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.
		Preload("Items.Producto").
		Preload("Pagos.MetodoPago").
		Preload("Usuario").
		Order("fecha DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

// rangoVentas limits a query to completed-range sales, promotions included.
func rangoVentas(q *gorm.DB, desde, hasta time.Time) *gorm.DB {
	return q.Where("fecha >= ? AND fecha < ?",
		desde.Format("2006-01-02"),
		hasta.AddDate(0, 0, 1).Format("2006-01-02"))
}

func (r *ventaRepo) TotalesEnRango(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, decimal.Decimal, int64, error) {
	var row struct {
		TotalDivisa decimal.Decimal
		TotalBs     decimal.Decimal
		NumVentas   int64
	}
	err := rangoVentas(r.db.WithContext(ctx).Model(&model.Venta{}), desde, hasta).
		Select("COALESCE(SUM(total_divisa),0) AS total_divisa, COALESCE(SUM(total_bs),0) AS total_bs, COUNT(*) AS num_ventas").
		Scan(&row).Error
	return row.TotalDivisa, row.TotalBs, row.NumVentas, err
}

func (r *ventaRepo) LitrosVendidosEnRango(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	var litros decimal.Decimal
	err := rangoVentas(r.db.WithContext(ctx).Model(&model.ItemVenta{}).
		Joins("JOIN ventas ON ventas.id = items_venta.venta_id").
		Joins("JOIN productos ON productos.id = items_venta.producto_id").
		Where("productos.tipo = ?", model.TipoAguaLitros), desde, hasta).
		Select("COALESCE(SUM(items_venta.cantidad),0)").
		Scan(&litros).Error
	return litros, err
}

func (r *ventaRepo) RecaudacionPorMetodo(ctx context.Context, desde, hasta time.Time) ([]dto.RecaudacionMetodo, error) {
	var rows []dto.RecaudacionMetodo
	err := rangoVentas(r.db.WithContext(ctx).Model(&model.PagoVenta{}).
		Joins("JOIN ventas ON ventas.id = pagos_venta.venta_id").
		Joins("JOIN metodos_pago ON metodos_pago.id = pagos_venta.metodo_pago_id"), desde, hasta).
		Select("metodos_pago.nombre AS metodo_pago, metodos_pago.es_bolivares, COALESCE(SUM(pagos_venta.monto),0) AS total").
		Group("metodos_pago.nombre, metodos_pago.es_bolivares").
		Order("metodos_pago.nombre").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) VentasPorDia(ctx context.Context, desde, hasta time.Time) ([]dto.VentaDia, error) {
	var rows []dto.VentaDia
	err := rangoVentas(r.db.WithContext(ctx).Model(&model.Venta{}), desde, hasta).
		Select("TO_CHAR(fecha, 'YYYY-MM-DD') AS fecha, COALESCE(SUM(total_divisa),0) AS total_divisa, COALESCE(SUM(total_bs),0) AS total_bs, COUNT(*) AS num_ventas").
		Group("TO_CHAR(fecha, 'YYYY-MM-DD')").
		Order("fecha").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) ProductosVendidos(ctx context.Context, desde, hasta time.Time) ([]dto.ProductoVendido, error) {
	var rows []dto.ProductoVendido
	err := rangoVentas(r.db.WithContext(ctx).Model(&model.ItemVenta{}).
		Joins("JOIN ventas ON ventas.id = items_venta.venta_id").
		Joins("JOIN productos ON productos.id = items_venta.producto_id"), desde, hasta).
		Select("productos.codigo, productos.nombre, COALESCE(SUM(items_venta.cantidad),0) AS cantidad, COALESCE(SUM(items_venta.subtotal_divisa),0) AS total_divisa").
		Group("productos.codigo, productos.nombre").
		Order("total_divisa DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ventaRepo) ItemsEnRango(ctx context.Context, desde, hasta time.Time) ([]model.ItemVenta, error) {
	var items []model.ItemVenta
	err := rangoVentas(r.db.WithContext(ctx).Model(&model.ItemVenta{}).
		Joins("JOIN ventas ON ventas.id = items_venta.venta_id"), desde, hasta).
		Preload("Producto").
		Find(&items).Error
	return items, err
}
