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
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
)

type stubDeliveryRepo struct {
	deliveries []*model.Delivery
}

func (r *stubDeliveryRepo) Create(_ context.Context, d *model.Delivery) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.deliveries = append(r.deliveries, d)
	return nil
}

func (r *stubDeliveryRepo) List(_ context.Context, _, _ time.Time, limit int) ([]model.Delivery, error) {
	var out []model.Delivery
	for i := len(r.deliveries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.deliveries[i])
	}
	return out, nil
}

func (r *stubDeliveryRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i, d := range r.deliveries {
		if d.ID == id {
			r.deliveries = append(r.deliveries[:i], r.deliveries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var _ repository.DeliveryRepository = (*stubDeliveryRepo)(nil)

func TestRegistrarDelivery(t *testing.T) {
	repo := &stubDeliveryRepo{}
	svc := service.NewDeliveryService(repo)

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarDeliveryRequest{
		Fecha:            "2026-08-30",
		Hora:             "14:30",
		NombreCliente:    "Bodega El Paso",
		Direccion:        "Calle 5, local 12",
		LitrosEntregados: dec("40.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", resp.Fecha)
	assert.Equal(t, "Bodega El Paso", resp.NombreCliente)
	assert.True(t, resp.LitrosEntregados.Equal(dec("40.00")))
	assert.Len(t, repo.deliveries, 1)
}

func TestEliminarDelivery(t *testing.T) {
	repo := &stubDeliveryRepo{}
	svc := service.NewDeliveryService(repo)

	resp, err := svc.Registrar(context.Background(), uuid.New(), dto.RegistrarDeliveryRequest{
		Fecha:            "2026-08-30",
		Hora:             "14:30",
		NombreCliente:    "Bodega El Paso",
		Direccion:        "Calle 5, local 12",
		LitrosEntregados: dec("40.00"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(context.Background(), uuid.MustParse(resp.ID)))
	assert.Empty(t, repo.deliveries)

	err = svc.Eliminar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrDeliveryNoEncontrado)
}
