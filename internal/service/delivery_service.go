package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
)

type DeliveryService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarDeliveryRequest) (*dto.DeliveryResponse, error)
	Listar(ctx context.Context, desde, hasta string, limit int) ([]dto.DeliveryResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type deliveryService struct {
	repo repository.DeliveryRepository
}

func NewDeliveryService(repo repository.DeliveryRepository) DeliveryService {
	return &deliveryService{repo: repo}
}

// Registrar logs a delivery. Deliveries do not touch the tank ledger: the
// liters were already drawn when the corresponding sale settled.
func (s *deliveryService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarDeliveryRequest) (*dto.DeliveryResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, err
	}
	d := &model.Delivery{
		Fecha:            fecha,
		Hora:             req.Hora,
		NombreCliente:    req.NombreCliente,
		Direccion:        req.Direccion,
		LitrosEntregados: req.LitrosEntregados,
		EncargadoID:      &usuarioID,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return deliveryToResponse(d), nil
}

func (s *deliveryService) Listar(ctx context.Context, desde, hasta string, limit int) ([]dto.DeliveryResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var d0, d1 time.Time
	if desde != "" {
		t, err := time.Parse("2006-01-02", desde)
		if err != nil {
			return nil, err
		}
		d0 = t
	}
	if hasta != "" {
		t, err := time.Parse("2006-01-02", hasta)
		if err != nil {
			return nil, err
		}
		d1 = t
	}
	deliveries, err := s.repo.List(ctx, d0, d1, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DeliveryResponse, len(deliveries))
	for i := range deliveries {
		resp[i] = *deliveryToResponse(&deliveries[i])
	}
	return resp, nil
}

// Eliminar removes a mislogged delivery. The tank ledger is untouched: the
// liters moved with the sale, not with the log entry.
func (s *deliveryService) Eliminar(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeliveryNoEncontrado
	}
	return nil
}

func deliveryToResponse(d *model.Delivery) *dto.DeliveryResponse {
	resp := &dto.DeliveryResponse{
		ID:               d.ID.String(),
		Fecha:            d.Fecha.Format("2006-01-02"),
		Hora:             d.Hora,
		NombreCliente:    d.NombreCliente,
		Direccion:        d.Direccion,
		LitrosEntregados: d.LitrosEntregados,
	}
	if d.Encargado != nil {
		resp.Encargado = d.Encargado.Username
	}
	return resp
}
