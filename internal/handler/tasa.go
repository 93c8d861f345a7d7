package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/middleware"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
)

type TasaHandler struct{ svc service.TasaService }

func NewTasaHandler(svc service.TasaService) *TasaHandler { return &TasaHandler{svc: svc} }

// RegistrarTasa godoc
// @Summary      Registrar tasa del día
// @Description  Una sola tasa por fecha; el historial nunca se reescribe.
// @Tags         tasa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarTasaRequest true "Tasa"
// @Success      201  {object} dto.TasaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/tasa [post]
func (h *TasaHandler) RegistrarTasa(c *gin.Context) {
	var req dto.RegistrarTasaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// TasaVigente godoc
// @Summary      Tasa vigente hoy
// @Tags         tasa
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.TasaResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/tasa/vigente [get]
func (h *TasaHandler) TasaVigente(c *gin.Context) {
	resp, err := h.svc.VigenteHoy(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarTasas godoc
// @Summary      Historial de tasas
// @Tags         tasa
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Registros (default 30)"
// @Success      200 {array} dto.TasaResponse
// @Router       /v1/tasa [get]
func (h *TasaHandler) ListarTasas(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.svc.ListRecientes(c.Request.Context(), limit)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
