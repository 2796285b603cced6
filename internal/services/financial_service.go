package services

import (
	"context"
	"errors"
	"time"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"gorm.io/gorm"
)

// FinancialService manages the independent ledger of inflows and outflows.
// Admin-only; entries may reference a demand, client or correspondent but
// live on their own.
type FinancialService struct {
	repo repository.FinancialRepository
}

// NewFinancialService creates a new financial service
func NewFinancialService(repo repository.FinancialRepository) *FinancialService {
	return &FinancialService{repo: repo}
}

var validMovementTypes = map[string]bool{
	models.MovementTypeInflow:  true,
	models.MovementTypeOutflow: true,
}

var validMovementStatuses = map[string]bool{
	models.MovementStatusPaid:      true,
	models.MovementStatusToPay:     true,
	models.MovementStatusReceived:  true,
	models.MovementStatusToReceive: true,
}

// CreateMovementInput is the ledger entry creation payload
type CreateMovementInput struct {
	Descricao        string     `json:"descricao" binding:"required"`
	Valor            float64    `json:"valor" binding:"required,gt=0"`
	Tipo             string     `json:"tipo" binding:"required"`
	Status           string     `json:"status" binding:"required"`
	DataVencimento   *time.Time `json:"data_vencimento"`
	DataPagamento    *time.Time `json:"data_pagamento"`
	DiligenciaID     *uint      `json:"diligencia_id"`
	ClienteID        *uint      `json:"cliente_id"`
	CorrespondenteID *uint      `json:"correspondente_id"`
}

// Create registers a new ledger entry
func (s *FinancialService) Create(ctx context.Context, input CreateMovementInput) (*models.FinancialMovement, error) {
	if !validMovementTypes[input.Tipo] {
		return nil, fail(ErrBadRequest, "Tipo de movimentação inválido")
	}
	if !validMovementStatuses[input.Status] {
		return nil, fail(ErrBadRequest, "Status de movimentação inválido")
	}

	movement := &models.FinancialMovement{
		Descricao:        input.Descricao,
		Valor:            input.Valor,
		Tipo:             input.Tipo,
		Status:           input.Status,
		DataVencimento:   input.DataVencimento,
		DataPagamento:    input.DataPagamento,
		DiligenciaID:     input.DiligenciaID,
		ClienteID:        input.ClienteID,
		CorrespondenteID: input.CorrespondenteID,
	}

	if err := s.repo.Create(ctx, movement); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, fail(ErrBadRequest, "Referência inválida para demanda, cliente ou correspondente")
		}
		return nil, err
	}
	return movement, nil
}

// GetByID fetches a single ledger entry with its references
func (s *FinancialService) GetByID(ctx context.Context, id uint) (*models.FinancialMovement, error) {
	movement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, movementNotFound(err)
	}
	return movement, nil
}

// List returns ledger entries filtered by type, status and date range
func (s *FinancialService) List(ctx context.Context, query *repository.ListQuery) ([]models.FinancialMovement, int64, error) {
	if tipo := query.Filters["tipo"]; tipo != "" && !validMovementTypes[tipo] {
		return nil, 0, fail(ErrBadRequest, "Tipo de movimentação inválido")
	}
	if status := query.Filters["status"]; status != "" && !validMovementStatuses[status] {
		return nil, 0, fail(ErrBadRequest, "Status de movimentação inválido")
	}
	return s.repo.List(ctx, query)
}

// MovementUpdate is the sparse ledger entry update payload
type MovementUpdate struct {
	Descricao      *string    `json:"descricao"`
	Valor          *float64   `json:"valor"`
	Tipo           *string    `json:"tipo"`
	Status         *string    `json:"status"`
	DataVencimento *time.Time `json:"data_vencimento"`
	DataPagamento  *time.Time `json:"data_pagamento"`
}

// Update applies a sparse update to a ledger entry
func (s *FinancialService) Update(ctx context.Context, id uint, update MovementUpdate) (*models.FinancialMovement, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, movementNotFound(err)
	}

	fields := make(map[string]interface{})
	if update.Descricao != nil {
		fields["descricao"] = *update.Descricao
	}
	if update.Valor != nil {
		if *update.Valor <= 0 {
			return nil, fail(ErrBadRequest, "Valor deve ser positivo")
		}
		fields["valor"] = *update.Valor
	}
	if update.Tipo != nil {
		if !validMovementTypes[*update.Tipo] {
			return nil, fail(ErrBadRequest, "Tipo de movimentação inválido")
		}
		fields["tipo"] = *update.Tipo
	}
	if update.Status != nil {
		if !validMovementStatuses[*update.Status] {
			return nil, fail(ErrBadRequest, "Status de movimentação inválido")
		}
		fields["status"] = *update.Status
	}
	if update.DataVencimento != nil {
		fields["data_vencimento"] = *update.DataVencimento
	}
	if update.DataPagamento != nil {
		fields["data_pagamento"] = *update.DataPagamento
	}
	if len(fields) == 0 {
		return nil, fail(ErrBadRequest, "Nenhum campo para atualizar")
	}

	return s.repo.Updates(ctx, id, fields)
}

// Delete removes a ledger entry
func (s *FinancialService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return movementNotFound(err)
	}
	return s.repo.Delete(ctx, id)
}

// Summary aggregates ledger totals: inflows, outflows, profit, outstanding
func (s *FinancialService) Summary(ctx context.Context) (*models.FinancialSummary, error) {
	return s.repo.Summary(ctx)
}

func movementNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, "Movimentação não encontrada")
	}
	return err
}
