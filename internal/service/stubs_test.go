package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
)

// In-memory repository stubs. The guarded relative UPDATEs are reproduced
// under a mutex so the same check-and-decrement contract holds when services
// are exercised concurrently in tests.

// ── Producto ─────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	mu        sync.Mutex
	porCodigo map[string]*model.Producto
	porID     map[uuid.UUID]*model.Producto
}

func newStubProductoRepo(productos ...*model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{
		porCodigo: make(map[string]*model.Producto),
		porID:     make(map[uuid.UUID]*model.Producto),
	}
	for _, p := range productos {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.porCodigo[p.Codigo] = p
		r.porID[p.ID] = p
	}
	return r
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.porCodigo[p.Codigo] = p
	r.porID[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	p, ok := r.porCodigo[codigo]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.porCodigo {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error { return nil }

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	p, ok := r.porID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.porCodigo, p.Codigo)
	delete(r.porID, id)
	return nil
}

func (r *stubProductoRepo) AjustarStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.porID[id]; ok {
		p.Stock += delta
	}
	return nil
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── MetodoPago ───────────────────────────────────────────────────────────────

type stubMetodoPagoRepo struct {
	porNombre map[string]*model.MetodoPago
}

func newStubMetodoPagoRepo() *stubMetodoPagoRepo {
	r := &stubMetodoPagoRepo{porNombre: make(map[string]*model.MetodoPago)}
	for nombre, esBs := range map[string]bool{
		"Efectivo BsD": true,
		"Pago Móvil":   true,
		"Divisa $":     false,
	} {
		r.porNombre[nombre] = &model.MetodoPago{ID: uuid.New(), Nombre: nombre, EsBolivares: esBs}
	}
	return r
}

func (r *stubMetodoPagoRepo) FindByNombre(_ context.Context, nombre string) (*model.MetodoPago, error) {
	m, ok := r.porNombre[nombre]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMetodoPagoRepo) List(_ context.Context) ([]model.MetodoPago, error) {
	var out []model.MetodoPago
	for _, m := range r.porNombre {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMetodoPagoRepo) SeedDefaults(_ context.Context) error { return nil }

var _ repository.MetodoPagoRepository = (*stubMetodoPagoRepo)(nil)

// ── TasaCambio ───────────────────────────────────────────────────────────────

type stubTasaRepo struct {
	tasas []*model.TasaCambio
}

func (r *stubTasaRepo) Create(_ context.Context, t *model.TasaCambio) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tasas = append(r.tasas, t)
	return nil
}

func (r *stubTasaRepo) FindByFecha(_ context.Context, fecha time.Time) (*model.TasaCambio, error) {
	for _, t := range r.tasas {
		if t.Fecha.Format("2006-01-02") == fecha.Format("2006-01-02") {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTasaRepo) Vigente(_ context.Context, fecha time.Time) (*model.TasaCambio, error) {
	var best *model.TasaCambio
	for _, t := range r.tasas {
		if t.Fecha.After(fecha) {
			continue
		}
		if best == nil || t.Fecha.After(best.Fecha) {
			best = t
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (r *stubTasaRepo) ListRecientes(_ context.Context, limit int) ([]model.TasaCambio, error) {
	var out []model.TasaCambio
	for _, t := range r.tasas {
		out = append(out, *t)
	}
	return out, nil
}

var _ repository.TasaCambioRepository = (*stubTasaRepo)(nil)

// ── Cisterna ─────────────────────────────────────────────────────────────────

type stubCisternaRepo struct {
	mu       sync.Mutex
	entradas []*model.Cisterna
}

func (r *stubCisternaRepo) DB() *gorm.DB { return nil }

func (r *stubCisternaRepo) Create(_ context.Context, c *model.Cisterna) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.entradas = append(r.entradas, c)
	return nil
}

func (r *stubCisternaRepo) Ultima(_ context.Context) (*model.Cisterna, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entradas) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	ultima := *r.entradas[len(r.entradas)-1]
	return &ultima, nil
}

func (r *stubCisternaRepo) List(_ context.Context, limit int) ([]model.Cisterna, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Cisterna
	for i := len(r.entradas) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.entradas[i])
	}
	return out, nil
}

// DescontarLitrosTx mirrors the SQL guard: decrement only when enough liters
// remain, atomically.
func (r *stubCisternaRepo) DescontarLitrosTx(_ *gorm.DB, id uuid.UUID, litros decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.entradas {
		if c.ID == id {
			if c.LitrosDisponibles.LessThan(litros) {
				return false, nil
			}
			c.LitrosDisponibles = c.LitrosDisponibles.Sub(litros)
			return true, nil
		}
	}
	return false, nil
}

var _ repository.CisternaRepository = (*stubCisternaRepo)(nil)

// ── Promocion ────────────────────────────────────────────────────────────────

type stubPromocionRepo struct {
	mu     sync.Mutex
	promos map[uuid.UUID]*model.Promocion
}

func newStubPromocionRepo() *stubPromocionRepo {
	return &stubPromocionRepo{promos: make(map[uuid.UUID]*model.Promocion)}
}

func (r *stubPromocionRepo) DB() *gorm.DB { return nil }

func (r *stubPromocionRepo) Create(_ context.Context, _ *gorm.DB, p *model.Promocion) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.promos[p.ID] = p
	return nil
}

func (r *stubPromocionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Promocion, error) {
	p, ok := r.promos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubPromocionRepo) List(_ context.Context) ([]model.Promocion, error) {
	var out []model.Promocion
	for _, p := range r.promos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPromocionRepo) ListPendientes(_ context.Context) ([]model.Promocion, error) {
	var out []model.Promocion
	for _, p := range r.promos {
		if p.BotellasPendientes() > 0 {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPromocionRepo) RetirarBotellaTx(_ *gorm.DB, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promos[id]
	if !ok || p.BotellasRetiradas >= p.BotellasPagadas {
		return false, nil
	}
	p.BotellasRetiradas++
	return true, nil
}

var _ repository.PromocionRepository = (*stubPromocionRepo)(nil)

// ── Venta ────────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	mu     sync.Mutex
	ventas map[uuid.UUID]*model.Venta

	// canned aggregates for report tests
	totalDivisa decimal.Decimal
	totalBs     decimal.Decimal
	numVentas   int64
	litros      decimal.Decimal
	porMetodo   []dto.RecaudacionMetodo
	porDia      []dto.VentaDia
	porProducto []dto.ProductoVendido
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) TotalesEnRango(_ context.Context, _, _ time.Time) (decimal.Decimal, decimal.Decimal, int64, error) {
	return r.totalDivisa, r.totalBs, r.numVentas, nil
}

func (r *stubVentaRepo) LitrosVendidosEnRango(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return r.litros, nil
}

func (r *stubVentaRepo) RecaudacionPorMetodo(_ context.Context, _, _ time.Time) ([]dto.RecaudacionMetodo, error) {
	return r.porMetodo, nil
}

func (r *stubVentaRepo) VentasPorDia(_ context.Context, _, _ time.Time) ([]dto.VentaDia, error) {
	return r.porDia, nil
}

func (r *stubVentaRepo) ProductosVendidos(_ context.Context, _, _ time.Time) ([]dto.ProductoVendido, error) {
	return r.porProducto, nil
}

func (r *stubVentaRepo) ItemsEnRango(_ context.Context, _, _ time.Time) ([]model.ItemVenta, error) {
	return nil, nil
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ventasPorTipo counts stored sales by tipo_venta.
func (r *stubVentaRepo) ventasPorTipo(tipo string) []*model.Venta {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Venta
	for _, v := range r.ventas {
		if v.TipoVenta == tipo {
			out = append(out, v)
		}
	}
	return out
}
