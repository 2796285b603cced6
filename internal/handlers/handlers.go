package handlers

import (
	"github.com/jurisconnect/jurisconnect-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	Demand        *DemandHandler
	Attachment    *AttachmentHandler
	Client        *ClientHandler
	Correspondent *CorrespondentHandler
	Financial     *FinancialHandler
	Dashboard     *DashboardHandler
	Report        *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(),
		Auth:          NewAuthHandler(svcs.Auth),
		Demand:        NewDemandHandler(svcs.Demand),
		Attachment:    NewAttachmentHandler(svcs.Attachment),
		Client:        NewClientHandler(svcs.Client, svcs.Auth),
		Correspondent: NewCorrespondentHandler(svcs.Correspondent, svcs.Auth),
		Financial:     NewFinancialHandler(svcs.Financial),
		Dashboard:     NewDashboardHandler(svcs.Dashboard),
		Report:        NewReportHandler(svcs.Report),
	}
}
