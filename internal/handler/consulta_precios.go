package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/apierror"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
)

// Price answers change with the daily rate, so the cache lives shorter than
// the rate does.
const precioCacheTTL = 15 * time.Minute

// ConsultaPreciosHandler serves the POS price lookup by product code,
// including the day's rate so the screen can show both currencies.
type ConsultaPreciosHandler struct {
	repo     repository.ProductoRepository
	tasaRepo repository.TasaCambioRepository
	rdb      *redis.Client
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, tasaRepo repository.TasaCambioRepository, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, tasaRepo: tasaRepo, rdb: rdb}
}

// GetPrecioPorCodigo godoc
// @Summary      Consulta de precio por código de producto
// @Tags         precio
// @Produce      json
// @Security     BearerAuth
// @Param        codigo path string true "Código del producto"
// @Success      200 {object} dto.PrecioResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/precio/{codigo} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "precio:" + codigo + ":" + time.Now().Format("2006-01-02")

	// 1. Try Redis cache
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.PrecioResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	// 2. Cache miss — query DB
	producto, err := h.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}
	tasaDelDia := decimal.Zero
	if tasa, err := h.tasaRepo.Vigente(ctx, time.Now()); err == nil {
		tasaDelDia = tasa.TasaBsd
	}

	resp := dto.PrecioResponse{
		Codigo:          producto.Codigo,
		Nombre:          producto.Nombre,
		PrecioDivisa:    producto.PrecioDivisa,
		PrecioBolivares: producto.PrecioDivisa.Mul(tasaDelDia).Round(2),
		TasaDelDia:      tasaDelDia,
	}

	// 3. Populate cache — best effort, ignore errors
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}
