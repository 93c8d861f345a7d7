package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/repository"
)

type MetodosPagoHandler struct{ repo repository.MetodoPagoRepository }

func NewMetodosPagoHandler(repo repository.MetodoPagoRepository) *MetodosPagoHandler {
	return &MetodosPagoHandler{repo: repo}
}

// ListarMetodosPago godoc
// @Summary      Listar metodos de pago
// @Tags         metodos-pago
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.MetodoPago
// @Router       /v1/metodos-pago [get]
func (h *MetodosPagoHandler) ListarMetodosPago(c *gin.Context) {
	metodos, err := h.repo.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, metodos)
}
