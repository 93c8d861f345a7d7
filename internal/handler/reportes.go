package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wtpgroupsystem-prog/WTPsa-System-Administrative/internal/service"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// ResumenDiario godoc
// @Summary      Resumen del día
// @Description  Snapshot del dashboard: ventas, litros vendidos y disponibilidad. Servido desde cache cuando está caliente.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success      200 {object} dto.ResumenDiario
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/resumen [get]
func (h *ReportesHandler) ResumenDiario(c *gin.Context) {
	resp, err := h.svc.ResumenDiario(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Control godoc
// @Summary      Reporte de control por período
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        rango query string false "semanal | mensual | anual | personalizado"
// @Param        desde query string false "Fecha YYYY-MM-DD (solo personalizado)"
// @Param        hasta query string false "Fecha YYYY-MM-DD (solo personalizado)"
// @Success      200 {object} dto.ControlReporte
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/control [get]
func (h *ReportesHandler) Control(c *gin.Context) {
	resp, err := h.svc.Control(c.Request.Context(), c.Query("rango"), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarCSV godoc
// @Summary      Exportar ventas del período como CSV
// @Tags         reportes
// @Produce      text/csv
// @Security     BearerAuth
// @Param        rango query string false "semanal | mensual | anual | personalizado"
// @Param        desde query string false "Fecha YYYY-MM-DD (solo personalizado)"
// @Param        hasta query string false "Fecha YYYY-MM-DD (solo personalizado)"
// @Success      200
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes/export [get]
func (h *ReportesHandler) ExportarCSV(c *gin.Context) {
	data, err := h.svc.ExportarCSV(c.Request.Context(), c.Query("rango"), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="ventas.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
