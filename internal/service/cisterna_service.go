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

type CisternaService interface {
	RegistrarIngreso(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCisternaRequest) (*dto.CisternaResponse, error)
	Disponibilidad(ctx context.Context) (*dto.DisponibilidadResponse, error)
	Listar(ctx context.Context, limit int) ([]dto.CisternaResponse, error)
}

type cisternaService struct {
	repo repository.CisternaRepository
}

func NewCisternaService(repo repository.CisternaRepository) CisternaService {
	return &cisternaService{repo: repo}
}

// RegistrarIngreso appends a ledger entry. The new running balance is the
// previous entry's balance plus the refill volume; a zero volume records a
// checkpoint without changing availability.
func (s *cisternaService) RegistrarIngreso(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarCisternaRequest) (*dto.CisternaResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, err
	}
	if req.Volumen.IsNegative() {
		return nil, errors.New("el volumen no puede ser negativo")
	}

	saldo := decimal.Zero
	ultima, err := s.repo.Ultima(ctx)
	if err == nil {
		saldo = ultima.LitrosDisponibles
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Cisterna{
		Fecha:             fecha,
		Hora:              req.Hora,
		Volumen:           req.Volumen,
		LitrosDisponibles: saldo.Add(req.Volumen),
		UsuarioID:         usuarioID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return cisternaToResponse(c), nil
}

func (s *cisternaService) Disponibilidad(ctx context.Context) (*dto.DisponibilidadResponse, error) {
	ultima, err := s.repo.Ultima(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.DisponibilidadResponse{LitrosDisponibles: decimal.Zero}, nil
		}
		return nil, err
	}
	return &dto.DisponibilidadResponse{
		LitrosDisponibles: ultima.LitrosDisponibles,
		UltimaEntrada:     ultima.Fecha.Format("2006-01-02") + " " + ultima.Hora,
	}, nil
}

func (s *cisternaService) Listar(ctx context.Context, limit int) ([]dto.CisternaResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entradas, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CisternaResponse, len(entradas))
	for i := range entradas {
		resp[i] = *cisternaToResponse(&entradas[i])
	}
	return resp, nil
}

func cisternaToResponse(c *model.Cisterna) *dto.CisternaResponse {
	resp := &dto.CisternaResponse{
		ID:                c.ID.String(),
		Fecha:             c.Fecha.Format("2006-01-02"),
		Hora:              c.Hora,
		Volumen:           c.Volumen,
		LitrosDisponibles: c.LitrosDisponibles,
	}
	if c.Usuario != nil {
		resp.Usuario = c.Usuario.Username
	}
	return resp
}
