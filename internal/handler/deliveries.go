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

type DeliveriesHandler struct{ svc service.DeliveryService }

func NewDeliveriesHandler(svc service.DeliveryService) *DeliveriesHandler {
	return &DeliveriesHandler{svc: svc}
}

// RegistrarDelivery godoc
// @Summary      Registrar delivery
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarDeliveryRequest true "Delivery"
// @Success      201  {object} dto.DeliveryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/deliveries [post]
func (h *DeliveriesHandler) RegistrarDelivery(c *gin.Context) {
	var req dto.RegistrarDeliveryRequest
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

// ListarDeliveries godoc
// @Summary      Listar deliveries
// @Tags         deliveries
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD"
// @Param        hasta query string false "Fecha YYYY-MM-DD"
// @Param        limit query int    false "Registros (default 50)"
// @Success      200 {array} dto.DeliveryResponse
// @Router       /v1/deliveries [get]
func (h *DeliveriesHandler) ListarDeliveries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("desde"), c.Query("hasta"), limit)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarDelivery godoc
// @Summary      Eliminar delivery
// @Tags         deliveries
// @Security     BearerAuth
// @Param        id path string true "Delivery ID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/deliveries/{id} [delete]
func (h *DeliveriesHandler) EliminarDelivery(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
