package services

import (
	"context"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/pkg/logger"
)

// UserCounts pairs total and active account counters
type UserCounts struct {
	Total  int64 `json:"total"`
	Ativos int64 `json:"ativos"`
}

// DashboardData is the aggregate payload behind the admin dashboard
type DashboardData struct {
	Demandas           *models.DemandStats      `json:"demandas"`
	Clientes           UserCounts               `json:"clientes"`
	Correspondentes    UserCounts               `json:"correspondentes"`
	Financeiro         *models.FinancialSummary `json:"financeiro"`
	DemandasRecentes   []models.DemandResponse  `json:"demandas_recentes"`
	AtividadesRecentes []models.ActivityLog     `json:"atividades_recentes"`
}

// DashboardService composes the counters, recent demands and recent activity
// shown on the admin landing page
type DashboardService struct {
	demandRepo        repository.DemandRepository
	clientRepo        repository.ClientRepository
	correspondentRepo repository.CorrespondentRepository
	financialRepo     repository.FinancialRepository
	activityLogRepo   repository.ActivityLogRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	demandRepo repository.DemandRepository,
	clientRepo repository.ClientRepository,
	correspondentRepo repository.CorrespondentRepository,
	financialRepo repository.FinancialRepository,
	activityLogRepo repository.ActivityLogRepository,
) *DashboardService {
	return &DashboardService{
		demandRepo:        demandRepo,
		clientRepo:        clientRepo,
		correspondentRepo: correspondentRepo,
		financialRepo:     financialRepo,
		activityLogRepo:   activityLogRepo,
	}
}

// Overview builds the dashboard payload. Counter queries that fail degrade to
// zero rather than failing the whole page; only the demand stats are required.
func (s *DashboardService) Overview(ctx context.Context) (*DashboardData, error) {
	stats, err := s.demandRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{Demandas: stats}

	if total, err := s.clientRepo.Count(ctx); err == nil {
		data.Clientes.Total = total
	} else {
		logger.Warn("Dashboard client count failed", "error", err)
	}
	if active, err := s.clientRepo.CountActive(ctx); err == nil {
		data.Clientes.Ativos = active
	}
	if total, err := s.correspondentRepo.Count(ctx); err == nil {
		data.Correspondentes.Total = total
	} else {
		logger.Warn("Dashboard correspondent count failed", "error", err)
	}
	if active, err := s.correspondentRepo.CountActive(ctx); err == nil {
		data.Correspondentes.Ativos = active
	}

	if summary, err := s.financialRepo.Summary(ctx); err == nil {
		data.Financeiro = summary
	} else {
		logger.Warn("Dashboard financial summary failed", "error", err)
	}

	if recent, err := s.demandRepo.Recent(ctx, 5); err == nil {
		responses := make([]models.DemandResponse, 0, len(recent))
		for i := range recent {
			responses = append(responses, recent[i].ToResponse())
		}
		data.DemandasRecentes = responses
	}

	if activity, err := s.activityLogRepo.FindRecent(ctx, 10); err == nil {
		data.AtividadesRecentes = activity
	}

	return data, nil
}
