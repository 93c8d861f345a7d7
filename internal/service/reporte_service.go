package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
)

const resumenTTL = 10 * time.Minute

type ReporteService interface {
	ResumenDiario(ctx context.Context, fecha string) (*dto.ResumenDiario, error)
	// RefrescarResumen recomputes and caches the snapshot; called by the
	// worker pool after each committed sale.
	RefrescarResumen(ctx context.Context, fecha string) error
	Control(ctx context.Context, rango, desde, hasta string) (*dto.ControlReporte, error)
	ExportarCSV(ctx context.Context, rango, desde, hasta string) ([]byte, error)
}

type reporteService struct {
	ventaRepo    repository.VentaRepository
	cisternaRepo repository.CisternaRepository
	tasaRepo     repository.TasaCambioRepository
	rdb          *redis.Client
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	cisternaRepo repository.CisternaRepository,
	tasaRepo repository.TasaCambioRepository,
	rdb *redis.Client,
) ReporteService {
	return &reporteService{
		ventaRepo:    ventaRepo,
		cisternaRepo: cisternaRepo,
		tasaRepo:     tasaRepo,
		rdb:          rdb,
	}
}

func resumenKey(fecha string) string { return "resumen:" + fecha }

// ResumenDiario serves the dashboard snapshot from Redis when warm and
// recomputes on miss. The cache is best effort: Redis being down degrades to
// a direct query, never to an error.
func (s *reporteService) ResumenDiario(ctx context.Context, fecha string) (*dto.ResumenDiario, error) {
	if fecha == "" {
		fecha = time.Now().Format("2006-01-02")
	}
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, resumenKey(fecha)).Result(); err == nil {
			var cached dto.ResumenDiario
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}
	resumen, err := s.computeResumen(ctx, fecha)
	if err != nil {
		return nil, err
	}
	s.cacheResumen(ctx, resumen)
	return resumen, nil
}

func (s *reporteService) RefrescarResumen(ctx context.Context, fecha string) error {
	resumen, err := s.computeResumen(ctx, fecha)
	if err != nil {
		return err
	}
	s.cacheResumen(ctx, resumen)
	return nil
}

func (s *reporteService) cacheResumen(ctx context.Context, r *dto.ResumenDiario) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, resumenKey(r.Fecha), data, resumenTTL).Err(); err != nil {
		log.Warn().Str("fecha", r.Fecha).Err(err).Msg("failed to cache resumen")
	}
}

func (s *reporteService) computeResumen(ctx context.Context, fecha string) (*dto.ResumenDiario, error) {
	dia, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return nil, err
	}

	totalDivisa, totalBs, numVentas, err := s.ventaRepo.TotalesEnRango(ctx, dia, dia)
	if err != nil {
		return nil, err
	}
	litrosVendidos, err := s.ventaRepo.LitrosVendidosEnRango(ctx, dia, dia)
	if err != nil {
		return nil, err
	}

	resumen := &dto.ResumenDiario{
		Fecha:             fecha,
		TotalDivisa:       totalDivisa,
		TotalBs:           totalBs,
		NumVentas:         numVentas,
		LitrosVendidos:    litrosVendidos,
		LitrosDisponibles: decimal.Zero,
	}
	if ultima, err := s.cisternaRepo.Ultima(ctx); err == nil {
		resumen.LitrosDisponibles = ultima.LitrosDisponibles
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if tasa, err := s.tasaRepo.Vigente(ctx, dia); err == nil {
		resumen.TasaDelDia = &tasa.TasaBsd
	}
	return resumen, nil
}

// resolverRango maps the named period to an inclusive [desde, hasta] pair.
// "personalizado" takes both bounds from the caller; everything else ends at
// today.
func resolverRango(rango, desde, hasta string) (time.Time, time.Time, error) {
	hoy := time.Now()
	switch rango {
	case "", "semanal":
		return hoy.AddDate(0, 0, -6), hoy, nil
	case "mensual":
		return time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, hoy.Location()), hoy, nil
	case "anual":
		return time.Date(hoy.Year(), 1, 1, 0, 0, 0, 0, hoy.Location()), hoy, nil
	case "personalizado":
		d0, err := time.Parse("2006-01-02", desde)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("fecha desde invalida: %w", err)
		}
		d1, err := time.Parse("2006-01-02", hasta)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("fecha hasta invalida: %w", err)
		}
		if d1.Before(d0) {
			return time.Time{}, time.Time{}, errors.New("el rango de fechas esta invertido")
		}
		return d0, d1, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("rango no reconocido: %s", rango)
	}
}

func (s *reporteService) Control(ctx context.Context, rango, desde, hasta string) (*dto.ControlReporte, error) {
	d0, d1, err := resolverRango(rango, desde, hasta)
	if err != nil {
		return nil, err
	}

	totalDivisa, totalBs, numVentas, err := s.ventaRepo.TotalesEnRango(ctx, d0, d1)
	if err != nil {
		return nil, err
	}
	litros, err := s.ventaRepo.LitrosVendidosEnRango(ctx, d0, d1)
	if err != nil {
		return nil, err
	}
	porMetodo, err := s.ventaRepo.RecaudacionPorMetodo(ctx, d0, d1)
	if err != nil {
		return nil, err
	}
	porDia, err := s.ventaRepo.VentasPorDia(ctx, d0, d1)
	if err != nil {
		return nil, err
	}
	porProducto, err := s.ventaRepo.ProductosVendidos(ctx, d0, d1)
	if err != nil {
		return nil, err
	}

	return &dto.ControlReporte{
		Desde:          d0.Format("2006-01-02"),
		Hasta:          d1.Format("2006-01-02"),
		TotalDivisa:    totalDivisa,
		TotalBs:        totalBs,
		NumVentas:      numVentas,
		LitrosVendidos: litros,
		PorMetodo:      porMetodo,
		PorDia:         rellenarDias(porDia, d0, d1),
		PorProducto:    porProducto,
	}, nil
}

// rellenarDias fills days without sales with zero rows so chart series stay
// gapless.
func rellenarDias(rows []dto.VentaDia, desde, hasta time.Time) []dto.VentaDia {
	porFecha := make(map[string]dto.VentaDia, len(rows))
	for _, r := range rows {
		porFecha[r.Fecha] = r
	}
	var out []dto.VentaDia
	for d := desde; !d.After(hasta); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if row, ok := porFecha[key]; ok {
			out = append(out, row)
			continue
		}
		out = append(out, dto.VentaDia{
			Fecha:       key,
			TotalDivisa: decimal.Zero,
			TotalBs:     decimal.Zero,
		})
	}
	return out
}

// ExportarCSV renders the period's sales as a spreadsheet-friendly CSV.
func (s *reporteService) ExportarCSV(ctx context.Context, rango, desde, hasta string) ([]byte, error) {
	d0, d1, err := resolverRango(rango, desde, hasta)
	if err != nil {
		return nil, err
	}
	ventas, _, err := s.ventaRepo.List(ctx, dto.VentaFilter{
		Desde: d0.Format("2006-01-02"),
		Hasta: d1.Format("2006-01-02"),
		Tipo:  "all",
		Page:  1,
		Limit: 10000,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"fecha", "usuario", "tipo", "producto", "cantidad", "subtotal_divisa", "subtotal_bs", "tasa_usada"})
	for i := range ventas {
		v := &ventas[i]
		usuario := ""
		if v.Usuario != nil {
			usuario = v.Usuario.Username
		}
		if len(v.Items) == 0 {
			_ = w.Write([]string{
				v.Fecha.Format("2006-01-02 15:04"), usuario, v.TipoVenta,
				"", "", v.TotalDivisa.StringFixed(2), v.TotalBs.StringFixed(2), v.TasaUsada.StringFixed(2),
			})
			continue
		}
		for _, it := range v.Items {
			nombre := ""
			if it.Producto != nil {
				nombre = it.Producto.Nombre
			}
			_ = w.Write([]string{
				v.Fecha.Format("2006-01-02 15:04"), usuario, v.TipoVenta,
				nombre, it.Cantidad.StringFixed(2),
				it.SubtotalDivisa.StringFixed(2), it.SubtotalBs.StringFixed(2),
				v.TasaUsada.StringFixed(2),
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
