package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
)

type TasaService interface {
	Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarTasaRequest) (*dto.TasaResponse, error)
	VigenteHoy(ctx context.Context) (*dto.TasaResponse, error)
	ListRecientes(ctx context.Context, limit int) ([]dto.TasaResponse, error)
}

type tasaService struct {
	repo repository.TasaCambioRepository
}

func NewTasaService(repo repository.TasaCambioRepository) TasaService {
	return &tasaService{repo: repo}
}

// Registrar stores the rate for one calendar date. One row per date; history
// is never rewritten, so sales settled under an older rate stay auditable.
func (s *tasaService) Registrar(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarTasaRequest) (*dto.TasaResponse, error) {
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByFecha(ctx, fecha); err == nil {
		return nil, ErrTasaDuplicada
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := &model.TasaCambio{
		Fecha:     fecha,
		TasaBsd:   req.TasaBsd,
		UsuarioID: &usuarioID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return tasaToResponse(t), nil
}

func (s *tasaService) VigenteHoy(ctx context.Context) (*dto.TasaResponse, error) {
	t, err := s.repo.Vigente(ctx, time.Now())
	if err != nil {
		return nil, ErrSinTasa
	}
	return tasaToResponse(t), nil
}

func (s *tasaService) ListRecientes(ctx context.Context, limit int) ([]dto.TasaResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 30
	}
	tasas, err := s.repo.ListRecientes(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TasaResponse, len(tasas))
	for i := range tasas {
		resp[i] = *tasaToResponse(&tasas[i])
	}
	return resp, nil
}

func tasaToResponse(t *model.TasaCambio) *dto.TasaResponse {
	resp := &dto.TasaResponse{
		ID:      t.ID.String(),
		Fecha:   t.Fecha.Format("2006-01-02"),
		TasaBsd: t.TasaBsd,
	}
	if t.Usuario != nil {
		resp.Usuario = t.Usuario.Username
	}
	return resp
}
