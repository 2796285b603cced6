package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/pkg/logger"
)

// ActivityLogService appends immutable audit rows for state-changing demand
// operations. Record never returns an error: audit logging must not abort
// the primary operation it accompanies, so failures are logged and swallowed.
type ActivityLogService struct {
	repo repository.ActivityLogRepository
}

// NewActivityLogService creates a new activity log service
func NewActivityLogService(repo repository.ActivityLogRepository) *ActivityLogService {
	return &ActivityLogService{repo: repo}
}

// Record appends one audit row, best-effort
func (s *ActivityLogService) Record(ctx context.Context, demandID, actorID uint, actorProfile, logType string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	details["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	payload, err := json.Marshal(details)
	if err != nil {
		logger.Error("Failed to encode activity log details", "error", err, "demanda_id", demandID)
		return
	}

	entry := &models.ActivityLog{
		DemandaID:  demandID,
		AtorID:     actorID,
		AtorPerfil: actorProfile,
		TipoLog:    logType,
		Detalhes:   string(payload),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("Failed to record activity log", "error", err, "demanda_id", demandID, "tipo_log", logType)
	}
}

// Recent returns the newest entries across all demands
func (s *ActivityLogService) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.FindRecent(ctx, limit)
}

// ForDemand returns a demand's entries, newest first
func (s *ActivityLogService) ForDemand(ctx context.Context, demandID uint, limit, offset int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.FindByDemandID(ctx, demandID, limit, offset)
}
