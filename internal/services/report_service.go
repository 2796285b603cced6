package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ReportService runs the admin-facing aggregate reports and the ledger
// export
type ReportService struct {
	reportRepo    repository.ReportRepository
	financialRepo repository.FinancialRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, financialRepo repository.FinancialRepository) *ReportService {
	return &ReportService{
		reportRepo:    reportRepo,
		financialRepo: financialRepo,
	}
}

// DemandsByStatus counts demands grouped by status
func (s *ReportService) DemandsByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	return s.reportRepo.DemandsByStatus(ctx)
}

// MonthlyRevenue reports completed-demand revenue for the last 12 months
func (s *ReportService) MonthlyRevenue(ctx context.Context) ([]repository.MonthlyRevenue, error) {
	return s.reportRepo.MonthlyRevenue(ctx)
}

// NewUsers counts registrations per account kind in a period, defaulting to
// the last 30 days
func (s *ReportService) NewUsers(ctx context.Context, start, end *time.Time) ([]repository.NewUserCount, error) {
	to := time.Now()
	if end != nil {
		to = *end
	}
	from := to.AddDate(0, 0, -30)
	if start != nil {
		from = *start
	}
	if from.After(to) {
		return nil, fail(ErrBadRequest, "Período inválido: data inicial posterior à final")
	}
	return s.reportRepo.NewUsers(ctx, from, to)
}

// CorrespondentPerformance aggregates demand outcomes per active correspondent
func (s *ReportService) CorrespondentPerformance(ctx context.Context) ([]repository.CorrespondentPerformance, error) {
	return s.reportRepo.CorrespondentPerformance(ctx)
}

// ExportFinancialXLSX renders the full ledger plus totals as a spreadsheet
func (s *ReportService) ExportFinancialXLSX(ctx context.Context) ([]byte, string, error) {
	movements, err := s.financialRepo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}
	summary, err := s.financialRepo.Summary(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Financeiro"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"ID", "Descrição", "Valor", "Tipo", "Status", "Vencimento", "Pagamento", "Criado em"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, movement := range movements {
		values := []interface{}{
			movement.ID,
			movement.Descricao,
			movement.Valor,
			movement.Tipo,
			movement.Status,
			formatDate(movement.DataVencimento),
			formatDate(movement.DataPagamento),
			movement.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	totalsRow := len(movements) + 3
	totals := [][2]interface{}{
		{"Total Entradas", summary.TotalEntradas},
		{"Total Saídas", summary.TotalSaidas},
		{"Lucro", summary.Lucro},
		{"Total a Pagar", summary.TotalAPagar},
		{"Total a Receber", summary.TotalAReceber},
	}
	for i, pair := range totals {
		labelCell, _ := excelize.CoordinatesToCellName(1, totalsRow+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, totalsRow+i)
		_ = f.SetCellValue(sheet, labelCell, pair[0])
		_ = f.SetCellStyle(sheet, labelCell, labelCell, headerStyle)
		_ = f.SetCellValue(sheet, valueCell, pair[1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("relatorio_financeiro_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
