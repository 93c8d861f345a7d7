package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
)

type promoFixture struct {
	svc      service.PromocionService
	promos   *stubPromocionRepo
	ventas   *stubVentaRepo
	cisterna *stubCisternaRepo
}

func buildPromoFixture(litrosTanque string) *promoFixture {
	promos := newStubPromocionRepo()
	ventas := newStubVentaRepo()
	cisterna := &stubCisternaRepo{}
	if litrosTanque != "" {
		cisterna.entradas = append(cisterna.entradas, &model.Cisterna{
			ID:                uuid.New(),
			Fecha:             time.Now(),
			Hora:              "08:00",
			Volumen:           dec(litrosTanque),
			LitrosDisponibles: dec(litrosTanque),
		})
	}
	svc := service.NewPromocionService(promos, ventas, cisterna, dec("20.00"))
	return &promoFixture{svc: svc, promos: promos, ventas: ventas, cisterna: cisterna}
}

func registrarPromo(t *testing.T, f *promoFixture, botellas int) *dto.PromocionResponse {
	t.Helper()
	resp, err := f.svc.Registrar(context.Background(), uuid.New(), dto.RegistrarPromocionRequest{
		Nombre:          "María Pérez",
		Telefono:        "0412-5551234",
		CantidadDivisa:  dec("15.00"),
		BotellasPagadas: botellas,
	})
	require.NoError(t, err)
	return resp
}

func TestRegistrarPromocionCreaVentaDeAuditoria(t *testing.T) {
	f := buildPromoFixture("100.00")

	resp := registrarPromo(t, f, 3)
	assert.Equal(t, 3, resp.BotellasPagadas)
	assert.Equal(t, 0, resp.BotellasRetiradas)
	assert.Equal(t, 3, resp.BotellasPendientes)

	// One zero-total marker sale, tagged as promotion movement.
	marcadores := f.ventas.ventasPorTipo(model.VentaPromocion)
	require.Len(t, marcadores, 1)
	assert.True(t, marcadores[0].TotalDivisa.IsZero())
	assert.True(t, marcadores[0].TotalBs.IsZero())
}

func TestRetirarBotella(t *testing.T) {
	f := buildPromoFixture("100.00")
	promo := registrarPromo(t, f, 2)
	id := uuid.MustParse(promo.ID)

	resp, err := f.svc.RetirarBotella(context.Background(), uuid.New(), id)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.BotellasRestantes)

	// Each bottle draws 20 liters from the tank.
	ultima, err := f.cisterna.Ultima(context.Background())
	require.NoError(t, err)
	assert.True(t, ultima.LitrosDisponibles.Equal(dec("80.00")), "litros: %s", ultima.LitrosDisponibles)

	guardada, err := f.promos.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, guardada.BotellasRetiradas)

	// Registrar wrote one marker, the redemption a second.
	assert.Len(t, f.ventas.ventasPorTipo(model.VentaPromocion), 2)
}

func TestRetirarBotellaSinPendientes(t *testing.T) {
	f := buildPromoFixture("100.00")
	promo := registrarPromo(t, f, 1)
	id := uuid.MustParse(promo.ID)

	_, err := f.svc.RetirarBotella(context.Background(), uuid.New(), id)
	require.NoError(t, err)

	_, err = f.svc.RetirarBotella(context.Background(), uuid.New(), id)
	assert.ErrorIs(t, err, service.ErrSinBotellasPendientes)
}

func TestRetirarBotellaPromocionDesconocida(t *testing.T) {
	f := buildPromoFixture("100.00")
	_, err := f.svc.RetirarBotella(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, service.ErrPromocionNoEncontrada)
}

func TestRetirarBotellaTanqueInsuficiente(t *testing.T) {
	f := buildPromoFixture("15.00")
	promo := registrarPromo(t, f, 1)

	_, err := f.svc.RetirarBotella(context.Background(), uuid.New(), uuid.MustParse(promo.ID))
	var litrosErr *service.LitrosInsuficientesError
	require.ErrorAs(t, err, &litrosErr)
	assert.True(t, litrosErr.Solicitados.Equal(dec("20.00")))

	// Nothing moved: the credit counter stays untouched.
	guardada, err := f.promos.FindByID(context.Background(), uuid.MustParse(promo.ID))
	require.NoError(t, err)
	assert.Equal(t, 0, guardada.BotellasRetiradas)
}

func TestListarPromocionesPendientes(t *testing.T) {
	f := buildPromoFixture("100.00")
	agotada := registrarPromo(t, f, 1)
	registrarPromo(t, f, 2)

	_, err := f.svc.RetirarBotella(context.Background(), uuid.New(), uuid.MustParse(agotada.ID))
	require.NoError(t, err)

	pendientes, err := f.svc.Listar(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, 2, pendientes[0].BotellasPendientes)

	todas, err := f.svc.Listar(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}
