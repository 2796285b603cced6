package repository

import (
	"context"
	"time"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"gorm.io/gorm"
)

// StatusCount is one row of the demands-by-status report
type StatusCount struct {
	Status     string `json:"status"`
	Quantidade int64  `json:"quantidade"`
}

// MonthlyRevenue is one row of the monthly revenue report, computed over
// completed demands only
type MonthlyRevenue struct {
	Mes              time.Time `json:"mes"`
	TotalDiligencias int64     `json:"total_diligencias"`
	Faturamento      float64   `json:"faturamento"`
}

// NewUserCount is one row of the new-users report
type NewUserCount struct {
	Tipo       string `json:"tipo"`
	Quantidade int64  `json:"quantidade"`
}

// CorrespondentPerformance aggregates per-correspondent demand outcomes
type CorrespondentPerformance struct {
	NomeCompleto         string  `json:"nome_completo"`
	Email                string  `json:"email"`
	TotalDiligencias     int64   `json:"total_diligencias"`
	DiligenciasCumpridas int64   `json:"diligencias_cumpridas"`
	ValorMedio           float64 `json:"valor_medio"`
}

// ReportRepository runs the read-only aggregate queries backing /relatorios
type ReportRepository interface {
	DemandsByStatus(ctx context.Context) ([]StatusCount, error)
	MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error)
	NewUsers(ctx context.Context, start, end time.Time) ([]NewUserCount, error)
	CorrespondentPerformance(ctx context.Context) ([]CorrespondentPerformance, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) DemandsByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.Demand{}).
		Select("status, COUNT(*) AS quantidade").
		Group("status").
		Order("quantidade DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error) {
	var rows []MonthlyRevenue
	err := r.db.WithContext(ctx).
		Model(&models.Demand{}).
		Select(`DATE_TRUNC('month', created_at) AS mes,
			COUNT(*) AS total_diligencias,
			COALESCE(SUM(valor_proposto_cliente), 0) AS faturamento`).
		Where("status = ?", models.DemandStatusCompleted).
		Group("DATE_TRUNC('month', created_at)").
		Order("mes DESC").
		Limit(12).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) NewUsers(ctx context.Context, start, end time.Time) ([]NewUserCount, error) {
	var rows []NewUserCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT 'clientes' AS tipo, COUNT(*) AS quantidade
		FROM clientes
		WHERE created_at BETWEEN ? AND ?
		UNION ALL
		SELECT 'correspondentes' AS tipo, COUNT(*) AS quantidade
		FROM correspondentes_servicos
		WHERE created_at BETWEEN ? AND ?`,
		start, end, start, end).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) CorrespondentPerformance(ctx context.Context) ([]CorrespondentPerformance, error) {
	var rows []CorrespondentPerformance
	err := r.db.WithContext(ctx).Raw(`
		SELECT cs.nome_completo,
		       cs.email,
		       COUNT(d.id) AS total_diligencias,
		       COUNT(CASE WHEN d.status = 'Cumprida' THEN 1 END) AS diligencias_cumpridas,
		       COALESCE(AVG(d.valor_proposto_cliente), 0) AS valor_medio
		FROM correspondentes_servicos cs
		LEFT JOIN demandas d ON cs.id = d.correspondente_id
		WHERE cs.is_active = true
		GROUP BY cs.id, cs.nome_completo, cs.email
		ORDER BY total_diligencias DESC`).
		Scan(&rows).Error
	return rows, err
}
