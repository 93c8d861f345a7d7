package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/apierror"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/dto"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/middleware"
	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
)

type PromosHandler struct{ svc service.PromocionService }

func NewPromosHandler(svc service.PromocionService) *PromosHandler {
	return &PromosHandler{svc: svc}
}

// RegistrarPromocion godoc
// @Summary      Registrar promoción de botellas
// @Description  Crea el crédito de botellas junto con una venta de auditoría de total cero.
// @Tags         promos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarPromocionRequest true "Promoción"
// @Success      201  {object} dto.PromocionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/promos [post]
func (h *PromosHandler) RegistrarPromocion(c *gin.Context) {
	var req dto.RegistrarPromocionRequest
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

// RetirarBotella godoc
// @Summary      Retirar una botella de la promoción
// @Description  Descuenta una botella del crédito y los litros correspondientes de la cisterna, atómicamente.
// @Tags         promos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la promoción"
// @Success      200 {object} dto.RetirarBotellaResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/promos/{id}/retirar [post]
func (h *PromosHandler) RetirarBotella(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RetirarBotella(c.Request.Context(), usuarioID, id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPromociones godoc
// @Summary      Listar promociones
// @Tags         promos
// @Produce      json
// @Security     BearerAuth
// @Param        pendientes query bool false "Solo promociones con botellas pendientes"
// @Success      200 {array} dto.PromocionResponse
// @Router       /v1/promos [get]
func (h *PromosHandler) ListarPromociones(c *gin.Context) {
	soloPendientes := c.Query("pendientes") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), soloPendientes)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
