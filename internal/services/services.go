package services

import (
	"github.com/jurisconnect/jurisconnect-api/internal/config"
	"github.com/jurisconnect/jurisconnect-api/internal/jobs"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth          *AuthService
	Demand        *DemandService
	Attachment    *AttachmentService
	Client        *ClientService
	Correspondent *CorrespondentService
	Financial     *FinancialService
	Dashboard     *DashboardService
	Report        *ReportService
	ActivityLog   *ActivityLogService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config) *Services {
	activityLogSvc := NewActivityLogService(repos.ActivityLog)

	return &Services{
		Auth:          NewAuthService(repos.Client, repos.Correspondent, repos.Admin, cfg),
		Demand:        NewDemandService(repos.Demand, repos.Correspondent, activityLogSvc),
		Attachment:    NewAttachmentService(repos.Attachment, repos.Demand, store, worker, activityLogSvc, cfg.MaxUploadSize),
		Client:        NewClientService(repos.Client, repos.Address),
		Correspondent: NewCorrespondentService(repos.Correspondent, repos.Address),
		Financial:     NewFinancialService(repos.Financial),
		Dashboard:     NewDashboardService(repos.Demand, repos.Client, repos.Correspondent, repos.Financial, repos.ActivityLog),
		Report:        NewReportService(repos.Report, repos.Financial),
		ActivityLog:   activityLogSvc,
	}
}
