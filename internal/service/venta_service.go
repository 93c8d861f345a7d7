package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/infra"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/worker"
)

// toleranciaPago absorbs rounding drift when Bs payments are converted back
// to USD. Differences within a cent are accepted.
var toleranciaPago = decimal.NewFromFloat(0.01)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	GenerarTicket(ctx context.Context, id uuid.UUID, storagePath string) (string, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	metodoRepo   repository.MetodoPagoRepository
	tasaRepo     repository.TasaCambioRepository
	cisternaRepo repository.CisternaRepository
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	metodoRepo repository.MetodoPagoRepository,
	tasaRepo repository.TasaCambioRepository,
	cisternaRepo repository.CisternaRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		metodoRepo:   metodoRepo,
		tasaRepo:     tasaRepo,
		cisternaRepo: cisternaRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Settlement runs in two phases:
//   1. Pre-flight, outside the TX: resolve the rate, every product and every
//      payment method; accumulate water liters; reconcile payments against
//      the dual-currency total.
//   2. BEGIN TX: create venta+items+pagos, decrement the tank balance with a
//      guarded relative UPDATE, decrement stock of non-water items. COMMIT.
// The tank guard repeats inside the TX because the pre-flight read is stale
// by the time two concurrent sales race for the same liters.

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrCarritoVacio
	}
	if len(req.Pagos) == 0 {
		return nil, ErrSinPagos
	}

	hoy := time.Now()
	tasa, err := s.tasaRepo.Vigente(ctx, hoy)
	if err != nil {
		return nil, ErrSinTasa
	}

	type resolvedItem struct {
		producto       *model.Producto
		cantidad       decimal.Decimal
		subtotalDivisa decimal.Decimal
		subtotalBs     decimal.Decimal
	}

	var resolved []resolvedItem
	totalDivisa := decimal.Zero
	litrosAgua := decimal.Zero

	for _, item := range req.Items {
		p, err := s.productoRepo.FindByCodigo(ctx, item.Codigo)
		if err != nil {
			return nil, &ProductoNoEncontradoError{Codigo: item.Codigo}
		}
		subtotal := p.PrecioDivisa.Mul(item.Cantidad).Round(2)
		resolved = append(resolved, resolvedItem{
			producto:       p,
			cantidad:       item.Cantidad,
			subtotalDivisa: subtotal,
			subtotalBs:     subtotal.Mul(tasa.TasaBsd).Round(2),
		})
		totalDivisa = totalDivisa.Add(subtotal)
		if p.Tipo == model.TipoAguaLitros {
			litrosAgua = litrosAgua.Add(item.Cantidad)
		}
	}
	totalBs := totalDivisa.Mul(tasa.TasaBsd).Round(2)

	// Pre-flight tank check. The authoritative guard runs inside the TX.
	var cisterna *model.Cisterna
	if litrosAgua.IsPositive() {
		cisterna, err = s.cisternaRepo.Ultima(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSinCisterna
			}
			return nil, err
		}
		if cisterna.LitrosDisponibles.LessThan(litrosAgua) {
			return nil, &LitrosInsuficientesError{
				Disponibles: cisterna.LitrosDisponibles,
				Solicitados: litrosAgua,
			}
		}
	}

	// Reconcile payments in USD. Bs amounts convert with the daily rate.
	type resolvedPago struct {
		metodo *model.MetodoPago
		monto  decimal.Decimal
	}
	var pagos []resolvedPago
	pagadoDivisa := decimal.Zero
	for _, pago := range req.Pagos {
		m, err := s.metodoRepo.FindByNombre(ctx, pago.MetodoPago)
		if err != nil {
			return nil, &MetodoPagoNoEncontradoError{Nombre: pago.MetodoPago}
		}
		pagos = append(pagos, resolvedPago{metodo: m, monto: pago.Monto})
		if m.EsBolivares {
			pagadoDivisa = pagadoDivisa.Add(pago.Monto.DivRound(tasa.TasaBsd, 2))
		} else {
			pagadoDivisa = pagadoDivisa.Add(pago.Monto)
		}
	}
	diferencia := pagadoDivisa.Sub(totalDivisa)
	if diferencia.Abs().GreaterThan(toleranciaPago) {
		return nil, &PagoDescuadradoError{Diferencia: diferencia}
	}

	venta := &model.Venta{
		UsuarioID:   usuarioID,
		Fecha:       hoy,
		TotalDivisa: totalDivisa,
		TotalBs:     totalBs,
		TasaUsada:   tasa.TasaBsd,
		TipoVenta:   model.VentaNormal,
	}
	for _, it := range resolved {
		venta.Items = append(venta.Items, model.ItemVenta{
			ProductoID:     it.producto.ID,
			Cantidad:       it.cantidad,
			SubtotalDivisa: it.subtotalDivisa,
			SubtotalBs:     it.subtotalBs,
		})
	}
	for _, pg := range pagos {
		venta.Pagos = append(venta.Pagos, model.PagoVenta{
			MetodoPagoID: pg.metodo.ID,
			Monto:        pg.monto,
		})
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, venta); err != nil {
			return err
		}
		if litrosAgua.IsPositive() {
			ok, err := s.cisternaRepo.DescontarLitrosTx(tx, cisterna.ID, litrosAgua)
			if err != nil {
				return err
			}
			if !ok {
				// Lost the race: another sale drained the liters first.
				return &LitrosInsuficientesError{
					Disponibles: cisterna.LitrosDisponibles,
					Solicitados: litrosAgua,
				}
			}
		}
		for _, it := range resolved {
			if it.producto.Tipo == model.TipoAguaLitros {
				continue
			}
			if err := s.productoRepo.AjustarStockTx(tx, it.producto.ID, -int(it.cantidad.IntPart())); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.EnqueueResumen(ctx, hoy.Format("2006-01-02"))
	}

	resp := &dto.VentaResponse{
		ID:          venta.ID.String(),
		Fecha:       venta.Fecha.Format(time.RFC3339),
		TotalDivisa: venta.TotalDivisa,
		TotalBs:     venta.TotalBs,
		TasaUsada:   venta.TasaUsada,
		TipoVenta:   venta.TipoVenta,
	}
	for _, it := range resolved {
		resp.Items = append(resp.Items, dto.ItemVentaResponse{
			Codigo:         it.producto.Codigo,
			Nombre:         it.producto.Nombre,
			Cantidad:       it.cantidad,
			SubtotalDivisa: it.subtotalDivisa,
			SubtotalBs:     it.subtotalBs,
		})
	}
	for _, pg := range pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoVentaResponse{
			MetodoPago: pg.metodo.Nombre,
			Monto:      pg.monto,
		})
	}
	return resp, nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrVentaNoEncontrada
	}
	return ventaToResponse(v), nil
}

// GenerarTicket renders the sale's PDF receipt and returns its path.
func (s *ventaService) GenerarTicket(ctx context.Context, id uuid.UUID, storagePath string) (string, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrVentaNoEncontrada
	}
	return infra.GenerateTicketPDF(v, storagePath)
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.VentaListResponse{
		Data:  make([]dto.VentaResponse, len(ventas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ventas {
		resp.Data[i] = *ventaToResponse(&ventas[i])
	}
	return resp, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:          v.ID.String(),
		Fecha:       v.Fecha.Format(time.RFC3339),
		TotalDivisa: v.TotalDivisa,
		TotalBs:     v.TotalBs,
		TasaUsada:   v.TasaUsada,
		TipoVenta:   v.TipoVenta,
	}
	if v.Usuario != nil {
		resp.Usuario = v.Usuario.Username
	}
	for _, it := range v.Items {
		item := dto.ItemVentaResponse{
			Cantidad:       it.Cantidad,
			SubtotalDivisa: it.SubtotalDivisa,
			SubtotalBs:     it.SubtotalBs,
		}
		if it.Producto != nil {
			item.Codigo = it.Producto.Codigo
			item.Nombre = it.Producto.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	for _, pg := range v.Pagos {
		pago := dto.PagoVentaResponse{Monto: pg.Monto}
		if pg.MetodoPago != nil {
			pago.MetodoPago = pg.MetodoPago.Nombre
		}
		resp.Pagos = append(resp.Pagos, pago)
	}
	return resp
}
