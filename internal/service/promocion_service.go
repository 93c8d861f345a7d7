package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
)

type PromocionService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarPromocionRequest) (*dto.PromocionResponse, error)
	RetirarBotella(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) (*dto.RetirarBotellaResponse, error)
	Listar(ctx context.Context, soloPendientes bool) ([]dto.PromocionResponse, error)
}

type promocionService struct {
	repo         repository.PromocionRepository
	ventaRepo    repository.VentaRepository
	cisternaRepo repository.CisternaRepository
	// litrosPorBotella is the tank volume drawn per redeemed bottle.
	litrosPorBotella decimal.Decimal
}

func NewPromocionService(
	repo repository.PromocionRepository,
	ventaRepo repository.VentaRepository,
	cisternaRepo repository.CisternaRepository,
	litrosPorBotella decimal.Decimal,
) PromocionService {
	return &promocionService{
		repo:             repo,
		ventaRepo:        ventaRepo,
		cisternaRepo:     cisternaRepo,
		litrosPorBotella: litrosPorBotella,
	}
}

// Registrar creates the bottle credit together with a zero-total audit sale,
// atomically, so the registration shows up in sales history without touching
// revenue totals.
func (s *promocionService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarPromocionRequest) (*dto.PromocionResponse, error) {
	promo := &model.Promocion{
		Nombre:          req.Nombre,
		Telefono:        req.Telefono,
		CantidadDivisa:  req.CantidadDivisa,
		BotellasPagadas: req.BotellasPagadas,
		UsuarioID:       &usuarioID,
	}
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, promo); err != nil {
			return err
		}
		return s.ventaRepo.Create(ctx, tx, auditVenta(usuarioID))
	})
	if err != nil {
		return nil, err
	}
	return promocionToResponse(promo), nil
}

// RetirarBotella hands one bottle to the customer: the credit counter and the
// tank balance move together or not at all. Both updates are guarded, so
// concurrent redemptions of the last bottle (or the last liters) cannot
// overshoot.
func (s *promocionService) RetirarBotella(ctx context.Context, usuarioID uuid.UUID, id uuid.UUID) (*dto.RetirarBotellaResponse, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrPromocionNoEncontrada
	}
	if promo.BotellasPendientes() <= 0 {
		return nil, ErrSinBotellasPendientes
	}

	cisterna, err := s.cisternaRepo.Ultima(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSinCisterna
		}
		return nil, err
	}
	if cisterna.LitrosDisponibles.LessThan(s.litrosPorBotella) {
		return nil, &LitrosInsuficientesError{
			Disponibles: cisterna.LitrosDisponibles,
			Solicitados: s.litrosPorBotella,
		}
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ok, err := s.repo.RetirarBotellaTx(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSinBotellasPendientes
		}
		ok, err = s.cisternaRepo.DescontarLitrosTx(tx, cisterna.ID, s.litrosPorBotella)
		if err != nil {
			return err
		}
		if !ok {
			return &LitrosInsuficientesError{
				Disponibles: cisterna.LitrosDisponibles,
				Solicitados: s.litrosPorBotella,
			}
		}
		return s.ventaRepo.Create(ctx, tx, auditVenta(usuarioID))
	})
	if err != nil {
		return nil, err
	}

	return &dto.RetirarBotellaResponse{
		Success:           true,
		BotellasRestantes: promo.BotellasPendientes() - 1,
	}, nil
}

func (s *promocionService) Listar(ctx context.Context, soloPendientes bool) ([]dto.PromocionResponse, error) {
	var promos []model.Promocion
	var err error
	if soloPendientes {
		promos, err = s.repo.ListPendientes(ctx)
	} else {
		promos, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PromocionResponse, len(promos))
	for i := range promos {
		resp[i] = *promocionToResponse(&promos[i])
	}
	return resp, nil
}

// auditVenta is the zero-total sales-history marker written alongside
// promotion movements.
func auditVenta(usuarioID uuid.UUID) *model.Venta {
	return &model.Venta{
		UsuarioID:   usuarioID,
		Fecha:       time.Now(),
		TotalDivisa: decimal.Zero,
		TotalBs:     decimal.Zero,
		TasaUsada:   decimal.Zero,
		TipoVenta:   model.VentaPromocion,
	}
}

func promocionToResponse(p *model.Promocion) *dto.PromocionResponse {
	return &dto.PromocionResponse{
		ID:                 p.ID.String(),
		Nombre:             p.Nombre,
		Telefono:           p.Telefono,
		CantidadDivisa:     p.CantidadDivisa,
		BotellasPagadas:    p.BotellasPagadas,
		BotellasRetiradas:  p.BotellasRetiradas,
		BotellasPendientes: p.BotellasPendientes(),
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
}
