package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/model"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	BuscarPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil {
		return nil, errors.New("ya existe un producto con ese codigo")
	}
	p := &model.Producto{
		Codigo:          req.Codigo,
		Nombre:          req.Nombre,
		PrecioDivisa:    req.PrecioDivisa,
		PrecioBolivares: req.PrecioBolivares,
		Tipo:            req.Tipo,
		Stock:           req.Stock,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.PrecioDivisa != nil {
		p.PrecioDivisa = *req.PrecioDivisa
	}
	if req.PrecioBolivares != nil {
		p.PrecioBolivares = *req.PrecioBolivares
	}
	if req.Tipo != nil {
		p.Tipo = *req.Tipo
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = *productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *productoService) BuscarPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, &ProductoNoEncontradoError{Codigo: codigo}
	}
	return productoToResponse(p), nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:              p.ID.String(),
		Codigo:          p.Codigo,
		Nombre:          p.Nombre,
		PrecioDivisa:    p.PrecioDivisa,
		PrecioBolivares: p.PrecioBolivares,
		Tipo:            p.Tipo,
		Stock:           p.Stock,
	}
}
