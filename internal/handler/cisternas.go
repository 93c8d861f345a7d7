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

type CisternasHandler struct{ svc service.CisternaService }

func NewCisternasHandler(svc service.CisternaService) *CisternasHandler {
	return &CisternasHandler{svc: svc}
}

// RegistrarIngreso godoc
// @Summary      Registrar entrada de cisterna
// @Description  Agrega una entrada al libro de la cisterna; el saldo corre desde la entrada anterior.
// @Tags         cisternas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarCisternaRequest true "Entrada"
// @Success      201  {object} dto.CisternaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cisternas [post]
func (h *CisternasHandler) RegistrarIngreso(c *gin.Context) {
	var req dto.RegistrarCisternaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegistrarIngreso(c.Request.Context(), usuarioID, req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Disponibilidad godoc
// @Summary      Litros disponibles actuales
// @Tags         cisternas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DisponibilidadResponse
// @Router       /v1/cisternas/disponibilidad [get]
func (h *CisternasHandler) Disponibilidad(c *gin.Context) {
	resp, err := h.svc.Disponibilidad(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarEntradas godoc
// @Summary      Historial del libro de cisterna
// @Tags         cisternas
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Registros (default 50)"
// @Success      200 {array} dto.CisternaResponse
// @Router       /v1/cisternas [get]
func (h *CisternasHandler) ListarEntradas(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.Listar(c.Request.Context(), limit)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
