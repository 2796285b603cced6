package services

import (
	"context"
	"errors"
	"time"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/policy"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/internal/statemachine"
	"github.com/jurisconnect/jurisconnect-api/pkg/logger"
	"gorm.io/gorm"
)

// DemandService governs the demand lifecycle: creation by clients,
// assignment by admins, status changes by admins and assigned
// correspondents, all audited best-effort.
type DemandService struct {
	demandRepo        repository.DemandRepository
	correspondentRepo repository.CorrespondentRepository
	activityLog       *ActivityLogService
}

// NewDemandService creates a new demand service
func NewDemandService(
	demandRepo repository.DemandRepository,
	correspondentRepo repository.CorrespondentRepository,
	activityLog *ActivityLogService,
) *DemandService {
	return &DemandService{
		demandRepo:        demandRepo,
		correspondentRepo: correspondentRepo,
		activityLog:       activityLog,
	}
}

// CreateDemandInput is the demand creation payload
type CreateDemandInput struct {
	Titulo               string     `json:"titulo" binding:"required"`
	DescricaoCompleta    string     `json:"descricao_completa" binding:"required"`
	NumeroProcesso       string     `json:"numero_processo"`
	TipoDemanda          string     `json:"tipo_demanda" binding:"required"`
	PrazoFatal           *time.Time `json:"prazo_fatal"`
	ValorPropostoCliente float64    `json:"valor_proposto_cliente"`
}

// Create registers a new demand for a client. Demands always start Pendente
// with no correspondent.
func (s *DemandService) Create(ctx context.Context, input CreateDemandInput, clientID uint) (*models.Demand, error) {
	demand := &models.Demand{
		Titulo:               input.Titulo,
		DescricaoCompleta:    input.DescricaoCompleta,
		NumeroProcesso:       input.NumeroProcesso,
		TipoDemanda:          input.TipoDemanda,
		PrazoFatal:           input.PrazoFatal,
		ValorPropostoCliente: input.ValorPropostoCliente,
		Status:               models.DemandStatusPending,
		ClienteID:            clientID,
	}

	if err := s.demandRepo.Create(ctx, demand); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, fail(ErrBadRequest, "Referência inválida nos dados fornecidos")
		}
		return nil, err
	}

	s.activityLog.Record(ctx, demand.ID, clientID, models.ProfileClient, models.LogTypeCreation, map[string]interface{}{
		"action":       "demand_created",
		"demand_title": demand.Titulo,
	})

	return demand, nil
}

// GetByID fetches a demand, applying the shared access guard. Existing but
// inaccessible demands yield Forbidden, not NotFound.
func (s *DemandService) GetByID(ctx context.Context, id uint, actor policy.Actor) (*models.Demand, error) {
	demand, err := s.demandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, demandNotFound(err)
	}

	if !policy.CanAccess(policy.DemandRefs(demand), actor) {
		return nil, fail(ErrForbidden, "Acesso negado a esta demanda")
	}

	return demand, nil
}

// ListMine returns the demands visible to the actor: their own for clients,
// assigned ones for correspondents, everything for admins.
func (s *DemandService) ListMine(ctx context.Context, actor policy.Actor, query *repository.ListQuery) ([]models.Demand, error) {
	switch actor.Profile {
	case models.ProfileClient:
		return s.demandRepo.FindByClientID(ctx, actor.ID, query)
	case models.ProfileCorrespondent:
		return s.demandRepo.FindByCorrespondentID(ctx, actor.ID, query)
	case models.ProfileAdmin:
		return s.demandRepo.FindAll(ctx, query)
	}
	return []models.Demand{}, nil
}

// Assign sets a demand's correspondent and the responsible admin together.
// The target must exist and be active; approval status is deliberately not
// checked here (the matching helper is the approval-gated path).
func (s *DemandService) Assign(ctx context.Context, demandID, correspondentID, adminID uint) (*models.Demand, error) {
	if _, err := s.demandRepo.FindByID(ctx, demandID); err != nil {
		return nil, demandNotFound(err)
	}

	correspondent, err := s.correspondentRepo.FindByID(ctx, correspondentID)
	if err != nil || !correspondent.IsActive {
		return nil, fail(ErrBadRequest, "Correspondente não encontrado ou inativo")
	}

	demand, err := s.demandRepo.AssignCorrespondent(ctx, demandID, correspondentID, adminID)
	if err != nil {
		return nil, err
	}

	s.activityLog.Record(ctx, demandID, adminID, models.ProfileAdmin, models.LogTypeUpdate, map[string]interface{}{
		"action":             "correspondent_assigned",
		"correspondent_id":   correspondentID,
		"correspondent_name": correspondent.NomeCompleto,
	})

	return demand, nil
}

// UpdateStatus transitions a demand's status. Clients may never change
// status; correspondents only on demands assigned to them; admins always.
// The old→new pair is not restricted to the regular lifecycle: irregular
// pairs are logged and persisted anyway.
func (s *DemandService) UpdateStatus(ctx context.Context, demandID uint, newStatus string, actor policy.Actor) (*models.Demand, error) {
	if !models.ValidDemandStatus(newStatus) {
		return nil, fail(ErrBadRequest, "Status inválido")
	}

	demand, err := s.demandRepo.FindByID(ctx, demandID)
	if err != nil {
		return nil, demandNotFound(err)
	}

	if actor.Profile == models.ProfileClient {
		return nil, fail(ErrForbidden, "Clientes não podem alterar o status das demandas")
	}
	if !policy.CanChangeStatus(policy.DemandRefs(demand), actor) {
		return nil, fail(ErrForbidden, "Apenas o correspondente responsável pode alterar o status")
	}

	oldStatus := demand.Status
	if machine := statemachine.NewDemandFSM(demand); !machine.CanReach(newStatus) {
		logger.Warn("Irregular demand status transition",
			"demanda_id", demandID, "old_status", oldStatus, "new_status", newStatus,
			"ator_id", actor.ID, "ator_perfil", actor.Profile)
	}

	updated, err := s.demandRepo.UpdateStatus(ctx, demandID, newStatus)
	if err != nil {
		return nil, err
	}

	s.activityLog.Record(ctx, demandID, actor.ID, actor.Profile, models.LogTypeStatusChange, map[string]interface{}{
		"action":     "status_changed",
		"old_status": oldStatus,
		"new_status": newStatus,
	})

	return updated, nil
}

// DemandUpdate is the sparse update payload: only non-nil fields are written
type DemandUpdate struct {
	Titulo               *string    `json:"titulo"`
	DescricaoCompleta    *string    `json:"descricao_completa"`
	NumeroProcesso       *string    `json:"numero_processo"`
	TipoDemanda          *string    `json:"tipo_demanda"`
	PrazoFatal           *time.Time `json:"prazo_fatal"`
	ValorPropostoCliente *float64   `json:"valor_proposto_cliente"`
}

func (u DemandUpdate) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Titulo != nil {
		fields["titulo"] = *u.Titulo
	}
	if u.DescricaoCompleta != nil {
		fields["descricao_completa"] = *u.DescricaoCompleta
	}
	if u.NumeroProcesso != nil {
		fields["numero_processo"] = *u.NumeroProcesso
	}
	if u.TipoDemanda != nil {
		fields["tipo_demanda"] = *u.TipoDemanda
	}
	if u.PrazoFatal != nil {
		fields["prazo_fatal"] = *u.PrazoFatal
	}
	if u.ValorPropostoCliente != nil {
		fields["valor_proposto_cliente"] = *u.ValorPropostoCliente
	}
	return fields
}

// Update applies a sparse update to a demand, guarded like reads
func (s *DemandService) Update(ctx context.Context, demandID uint, update DemandUpdate, actor policy.Actor) (*models.Demand, error) {
	demand, err := s.demandRepo.FindByID(ctx, demandID)
	if err != nil {
		return nil, demandNotFound(err)
	}

	if !policy.CanAccess(policy.DemandRefs(demand), actor) {
		return nil, fail(ErrForbidden, "Acesso negado para editar esta demanda")
	}

	fields := update.fields()
	if len(fields) == 0 {
		return nil, fail(ErrBadRequest, "Nenhum campo para atualizar")
	}

	updated, err := s.demandRepo.Updates(ctx, demandID, fields)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	s.activityLog.Record(ctx, demandID, actor.ID, actor.Profile, models.LogTypeUpdate, map[string]interface{}{
		"action":         "demand_updated",
		"updated_fields": names,
	})

	return updated, nil
}

// Logs returns a demand's activity trail, guarded like reads
func (s *DemandService) Logs(ctx context.Context, demandID uint, actor policy.Actor, limit, offset int) ([]models.ActivityLog, error) {
	demand, err := s.demandRepo.FindByID(ctx, demandID)
	if err != nil {
		return nil, demandNotFound(err)
	}

	if !policy.CanAccess(policy.DemandRefs(demand), actor) {
		return nil, fail(ErrForbidden, "Acesso negado aos registros desta demanda")
	}

	return s.activityLog.ForDemand(ctx, demandID, limit, offset)
}

// Stats aggregates demand counters for dashboards
func (s *DemandService) Stats(ctx context.Context) (*models.DemandStats, error) {
	return s.demandRepo.Stats(ctx)
}

// Recent returns the newest demands
func (s *DemandService) Recent(ctx context.Context, limit int) ([]models.Demand, error) {
	return s.demandRepo.Recent(ctx, limit)
}

func demandNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, "Demanda não encontrada")
	}
	return err
}
