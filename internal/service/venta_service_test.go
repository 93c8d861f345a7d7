package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type ventaFixture struct {
	svc      service.VentaService
	ventas   *stubVentaRepo
	cisterna *stubCisternaRepo
	tasas    *stubTasaRepo
}

// buildVentaFixture wires the settlement engine against in-memory stubs:
// agua a granel at $2.00/L, a 20L bottle at $5.00, today's rate 30.00 Bs/$
// and a tank holding 100 liters.
func buildVentaFixture(t *testing.T, conTasa, conCisterna bool) *ventaFixture {
	t.Helper()

	productoRepo := newStubProductoRepo(
		&model.Producto{Codigo: "00001", Nombre: "Agua a granel", PrecioDivisa: dec("2.00"), Tipo: model.TipoAguaLitros},
		&model.Producto{Codigo: "00002", Nombre: "Botellon 20L", PrecioDivisa: dec("5.00"), Tipo: model.TipoBotella20L, Stock: 10},
	)
	tasas := &stubTasaRepo{}
	if conTasa {
		tasas.tasas = append(tasas.tasas, &model.TasaCambio{
			ID:      uuid.New(),
			Fecha:   time.Now().AddDate(0, 0, -1),
			TasaBsd: dec("30.00"),
		})
	}
	cisterna := &stubCisternaRepo{}
	if conCisterna {
		cisterna.entradas = append(cisterna.entradas, &model.Cisterna{
			ID:                uuid.New(),
			Fecha:             time.Now(),
			Hora:              "08:00",
			Volumen:           dec("100.00"),
			LitrosDisponibles: dec("100.00"),
		})
	}
	ventas := newStubVentaRepo()
	svc := service.NewVentaService(ventas, productoRepo, newStubMetodoPagoRepo(), tasas, cisterna, nil)
	return &ventaFixture{svc: svc, ventas: ventas, cisterna: cisterna, tasas: tasas}
}

func itemAgua(litros string) dto.ItemCarritoRequest {
	return dto.ItemCarritoRequest{Codigo: "00001", Cantidad: dec(litros)}
}

func pagoBs(monto string) dto.PagoRequest {
	return dto.PagoRequest{MetodoPago: "Efectivo BsD", Monto: dec(monto)}
}

func pagoUSD(monto string) dto.PagoRequest {
	return dto.PagoRequest{MetodoPago: "Divisa $", Monto: dec(monto)}
}

func TestRegistrarVentaCarritoVacio(t *testing.T) {
	f := buildVentaFixture(t, true, true)
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Pagos: []dto.PagoRequest{pagoBs("100")},
	})
	assert.ErrorIs(t, err, service.ErrCarritoVacio)
}

func TestRegistrarVentaSinPagos(t *testing.T) {
	f := buildVentaFixture(t, true, true)
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
	})
	assert.ErrorIs(t, err, service.ErrSinPagos)
}

func TestRegistrarVentaSinTasa(t *testing.T) {
	f := buildVentaFixture(t, false, true)
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
		Pagos: []dto.PagoRequest{pagoBs("180.00")},
	})
	assert.ErrorIs(t, err, service.ErrSinTasa)
}

func TestRegistrarVentaProductoDesconocido(t *testing.T) {
	f := buildVentaFixture(t, true, true)
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{{Codigo: "99999", Cantidad: dec("1")}},
		Pagos: []dto.PagoRequest{pagoBs("100")},
	})
	var notFound *service.ProductoNoEncontradoError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "99999", notFound.Codigo)
}

func TestRegistrarVentaSinCisterna(t *testing.T) {
	f := buildVentaFixture(t, true, false)
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
		Pagos: []dto.PagoRequest{pagoBs("180.00")},
	})
	assert.ErrorIs(t, err, service.ErrSinCisterna)
}

func TestRegistrarVentaLitrosInsuficientes(t *testing.T) {
	f := buildVentaFixture(t, true, true)
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("150")},
		Pagos: []dto.PagoRequest{pagoUSD("300.00")},
	})
	var litrosErr *service.LitrosInsuficientesError
	require.ErrorAs(t, err, &litrosErr)
	assert.True(t, litrosErr.Disponibles.Equal(dec("100.00")))
	assert.True(t, litrosErr.Solicitados.Equal(dec("150")))
}

func TestRegistrarVentaMetodoDesconocido(t *testing.T) {
	f := buildVentaFixture(t, true, true)
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
		Pagos: []dto.PagoRequest{{MetodoPago: "Cheque", Monto: dec("180.00")}},
	})
	var metodoErr *service.MetodoPagoNoEncontradoError
	require.ErrorAs(t, err, &metodoErr)
	assert.Equal(t, "Cheque", metodoErr.Nombre)
}

func TestRegistrarVentaPagoDescuadrado(t *testing.T) {
	f := buildVentaFixture(t, true, true)
	// Total 6.00 USD; pay 5.98 — diff 0.02 exceeds the 0.01 tolerance.
	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
		Pagos: []dto.PagoRequest{pagoUSD("5.98")},
	})
	var pagoErr *service.PagoDescuadradoError
	require.ErrorAs(t, err, &pagoErr)
	assert.True(t, pagoErr.Diferencia.Equal(dec("-0.02")))
}

func TestRegistrarVentaToleranciaDeUnCentavo(t *testing.T) {
	f := buildVentaFixture(t, true, true)
	// diff exactly 0.01 — inside tolerance, sale settles.
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
		Pagos: []dto.PagoRequest{pagoUSD("5.99")},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalDivisa.Equal(dec("6.00")))
}

func TestRegistrarVentaEnBolivares(t *testing.T) {
	f := buildVentaFixture(t, true, true)

	// 3 L × $2.00 = $6.00 → 180.00 Bs at 30.00 Bs/$
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
		Pagos: []dto.PagoRequest{pagoBs("180.00")},
	})
	require.NoError(t, err)

	assert.True(t, resp.TotalDivisa.Equal(dec("6.00")), "total divisa: %s", resp.TotalDivisa)
	assert.True(t, resp.TotalBs.Equal(dec("180.00")), "total bs: %s", resp.TotalBs)
	assert.True(t, resp.TasaUsada.Equal(dec("30.00")))
	assert.Equal(t, model.VentaNormal, resp.TipoVenta)

	// Tank decremented by the liters sold
	ultima, err := f.cisterna.Ultima(context.Background())
	require.NoError(t, err)
	assert.True(t, ultima.LitrosDisponibles.Equal(dec("97.00")), "litros: %s", ultima.LitrosDisponibles)
}

func TestRegistrarVentaPagoMixto(t *testing.T) {
	f := buildVentaFixture(t, true, true)

	// $6.00 paid as $3.00 cash plus 90.00 Bs (= $3.00 at 30.00)
	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
		Pagos: []dto.PagoRequest{pagoUSD("3.00"), pagoBs("90.00")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Pagos, 2)
	assert.True(t, resp.TotalBs.Equal(resp.TotalDivisa.Mul(resp.TasaUsada)))
}

func TestRegistrarVentaBotellaNoTocaCisterna(t *testing.T) {
	f := buildVentaFixture(t, true, true)

	_, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{{Codigo: "00002", Cantidad: dec("2")}},
		Pagos: []dto.PagoRequest{pagoUSD("10.00")},
	})
	require.NoError(t, err)

	ultima, err := f.cisterna.Ultima(context.Background())
	require.NoError(t, err)
	assert.True(t, ultima.LitrosDisponibles.Equal(dec("100.00")))
}

func TestRegistrarVentaUsaTasaVigenteMasReciente(t *testing.T) {
	f := buildVentaFixture(t, true, true)
	// Newer rate for today supersedes yesterday's.
	f.tasas.tasas = append(f.tasas.tasas, &model.TasaCambio{
		ID:      uuid.New(),
		Fecha:   time.Now(),
		TasaBsd: dec("40.00"),
	})

	resp, err := f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
		Items: []dto.ItemCarritoRequest{itemAgua("3")},
		Pagos: []dto.PagoRequest{pagoBs("240.00")},
	})
	require.NoError(t, err)
	assert.True(t, resp.TasaUsada.Equal(dec("40.00")))
	assert.True(t, resp.TotalBs.Equal(dec("240.00")))
}

// Two concurrent sales fight for the same 100 liters; the guarded decrement
// must let exactly one of the 60L carts through.
func TestRegistrarVentaConcurrente(t *testing.T) {
	f := buildVentaFixture(t, true, true)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.RegistrarVenta(context.Background(), uuid.New(), dto.RegistrarVentaRequest{
				Items: []dto.ItemCarritoRequest{itemAgua("60")},
				Pagos: []dto.PagoRequest{pagoUSD("120.00")},
			})
		}(i)
	}
	wg.Wait()

	exitosas := 0
	for _, err := range errs {
		if err == nil {
			exitosas++
		} else {
			var litrosErr *service.LitrosInsuficientesError
			assert.ErrorAs(t, err, &litrosErr)
		}
	}
	assert.Equal(t, 1, exitosas)

	ultima, err := f.cisterna.Ultima(context.Background())
	require.NoError(t, err)
	assert.True(t, ultima.LitrosDisponibles.Equal(dec("40.00")), "litros: %s", ultima.LitrosDisponibles)
}
