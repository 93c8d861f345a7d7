package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
)

func buildReporteFixture(ventas *stubVentaRepo) service.ReporteService {
	cisterna := &stubCisternaRepo{entradas: []*model.Cisterna{{
		ID:                uuid.New(),
		Fecha:             time.Now(),
		Hora:              "07:00",
		Volumen:           dec("800.00"),
		LitrosDisponibles: dec("800.00"),
	}}}
	tasas := &stubTasaRepo{tasas: []*model.TasaCambio{{
		ID:      uuid.New(),
		Fecha:   time.Now().AddDate(0, 0, -1),
		TasaBsd: dec("36.00"),
	}}}
	return service.NewReporteService(ventas, cisterna, tasas, nil)
}

func TestResumenDiarioSinRedis(t *testing.T) {
	ventas := newStubVentaRepo()
	ventas.totalDivisa = dec("120.00")
	ventas.totalBs = dec("4320.00")
	ventas.numVentas = 8
	ventas.litros = dec("240.00")
	svc := buildReporteFixture(ventas)

	resumen, err := svc.ResumenDiario(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), resumen.Fecha)
	assert.True(t, resumen.TotalDivisa.Equal(dec("120.00")))
	assert.True(t, resumen.TotalBs.Equal(dec("4320.00")))
	assert.Equal(t, int64(8), resumen.NumVentas)
	assert.True(t, resumen.LitrosVendidos.Equal(dec("240.00")))
	assert.True(t, resumen.LitrosDisponibles.Equal(dec("800.00")))
	require.NotNil(t, resumen.TasaDelDia)
	assert.True(t, resumen.TasaDelDia.Equal(dec("36.00")))
}

func TestResumenDiarioFechaInvalida(t *testing.T) {
	svc := buildReporteFixture(newStubVentaRepo())
	_, err := svc.ResumenDiario(context.Background(), "30-08-2026")
	assert.Error(t, err)
}

func TestControlRellenaDiasSinVentas(t *testing.T) {
	ventas := newStubVentaRepo()
	ventas.porDia = []dto.VentaDia{
		{Fecha: "2026-08-26", TotalDivisa: dec("50.00"), TotalBs: dec("1800.00"), NumVentas: 4},
		{Fecha: "2026-08-28", TotalDivisa: dec("30.00"), TotalBs: dec("1080.00"), NumVentas: 2},
	}
	svc := buildReporteFixture(ventas)

	reporte, err := svc.Control(context.Background(), "personalizado", "2026-08-25", "2026-08-29")
	require.NoError(t, err)
	require.Len(t, reporte.PorDia, 5)

	// Days without sales become zero rows so chart series stay gapless.
	assert.Equal(t, "2026-08-25", reporte.PorDia[0].Fecha)
	assert.True(t, reporte.PorDia[0].TotalDivisa.IsZero())
	assert.True(t, reporte.PorDia[1].TotalDivisa.Equal(dec("50.00")))
	assert.True(t, reporte.PorDia[2].TotalDivisa.IsZero())
	assert.True(t, reporte.PorDia[3].TotalDivisa.Equal(dec("30.00")))
	assert.True(t, reporte.PorDia[4].TotalDivisa.IsZero())
}

func TestControlRangoInvertido(t *testing.T) {
	svc := buildReporteFixture(newStubVentaRepo())
	_, err := svc.Control(context.Background(), "personalizado", "2026-08-29", "2026-08-25")
	assert.Error(t, err)
}

func TestControlRangoDesconocido(t *testing.T) {
	svc := buildReporteFixture(newStubVentaRepo())
	_, err := svc.Control(context.Background(), "quincenal", "", "")
	assert.Error(t, err)
}

func TestControlSemanalPorDefecto(t *testing.T) {
	svc := buildReporteFixture(newStubVentaRepo())

	reporte, err := svc.Control(context.Background(), "", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Now().AddDate(0, 0, -6).Format("2006-01-02"), reporte.Desde)
	assert.Equal(t, time.Now().Format("2006-01-02"), reporte.Hasta)
	// Seven zero rows for a week with no sales.
	assert.Len(t, reporte.PorDia, 7)
}

func TestExportarCSV(t *testing.T) {
	ventas := newStubVentaRepo()
	producto := &model.Producto{ID: uuid.New(), Codigo: "00001", Nombre: "Agua a granel", Tipo: model.TipoAguaLitros}
	require.NoError(t, ventas.Create(context.Background(), nil, &model.Venta{
		UsuarioID:   uuid.New(),
		Fecha:       time.Now(),
		TotalDivisa: dec("6.00"),
		TotalBs:     dec("216.00"),
		TasaUsada:   dec("36.00"),
		TipoVenta:   model.VentaNormal,
		Items: []model.ItemVenta{{
			Producto:       producto,
			Cantidad:       dec("3.00"),
			SubtotalDivisa: dec("6.00"),
			SubtotalBs:     dec("216.00"),
		}},
	}))
	svc := buildReporteFixture(ventas)

	data, err := svc.ExportarCSV(context.Background(), "semanal", "", "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "fecha,usuario,tipo,producto,cantidad,subtotal_divisa,subtotal_bs,tasa_usada", lines[0])
	assert.Contains(t, lines[1], "Agua a granel")
	assert.Contains(t, lines[1], "6.00")
	assert.Contains(t, lines[1], "36.00")
}
