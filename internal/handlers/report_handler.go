package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DemandsByStatus counts demands grouped by status
func (h *ReportHandler) DemandsByStatus(c *gin.Context) {
	rows, err := h.reportService.DemandsByStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Relatório de demandas por status", rows)
}

// MonthlyRevenue reports completed-demand revenue per month
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	rows, err := h.reportService.MonthlyRevenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Relatório de faturamento mensal", rows)
}

// NewUsers counts registrations per account kind in a period
func (h *ReportHandler) NewUsers(c *gin.Context) {
	start := parseDateQuery(c, "data_inicio")
	end := parseDateQuery(c, "data_fim")

	rows, err := h.reportService.NewUsers(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Relatório de novos usuários", rows)
}

// CorrespondentPerformance aggregates outcomes per active correspondent
func (h *ReportHandler) CorrespondentPerformance(c *gin.Context) {
	rows, err := h.reportService.CorrespondentPerformance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Relatório de desempenho dos correspondentes", rows)
}

// ExportFinancial streams the ledger as an XLSX download
func (h *ReportHandler) ExportFinancial(c *gin.Context) {
	data, filename, err := h.reportService.ExportFinancialXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseDateQuery(c *gin.Context, name string) *time.Time {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
