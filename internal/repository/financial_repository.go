package repository

import (
	"context"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"gorm.io/gorm"
)

// FinancialRepository defines the interface for ledger data access
type FinancialRepository interface {
	Create(ctx context.Context, movement *models.FinancialMovement) error
	FindByID(ctx context.Context, id uint) (*models.FinancialMovement, error)
	List(ctx context.Context, query *ListQuery) ([]models.FinancialMovement, int64, error)
	Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.FinancialMovement, error)
	Delete(ctx context.Context, id uint) error
	Summary(ctx context.Context) (*models.FinancialSummary, error)
	FindAll(ctx context.Context) ([]models.FinancialMovement, error)
}

type financialRepository struct {
	db *gorm.DB
}

// NewFinancialRepository creates a new financial repository
func NewFinancialRepository(db *gorm.DB) FinancialRepository {
	return &financialRepository{db: db}
}

func (r *financialRepository) Create(ctx context.Context, movement *models.FinancialMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *financialRepository) FindByID(ctx context.Context, id uint) (*models.FinancialMovement, error) {
	var movement models.FinancialMovement
	err := r.db.WithContext(ctx).
		Preload("Diligencia").
		Preload("Cliente").
		Preload("Correspondente").
		First(&movement, id).Error
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *financialRepository) List(ctx context.Context, query *ListQuery) ([]models.FinancialMovement, int64, error) {
	var movements []models.FinancialMovement
	var total int64

	db := r.db.WithContext(ctx).Model(&models.FinancialMovement{})

	if tipo := query.Filters["tipo"]; tipo != "" {
		db = db.Where("tipo = ?", tipo)
	}
	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}
	if inicio := query.Filters["data_inicio"]; inicio != "" {
		db = db.Where("created_at >= ?", inicio)
	}
	if fim := query.Filters["data_fim"]; fim != "" {
		db = db.Where("created_at <= ?", fim)
	}

	db.Count(&total)

	err := db.Preload("Diligencia").
		Preload("Cliente").
		Preload("Correspondente").
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&movements).Error
	return movements, total, err
}

func (r *financialRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.FinancialMovement, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.FinancialMovement{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *financialRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FinancialMovement{}, id).Error
}

func (r *financialRepository) Summary(ctx context.Context) (*models.FinancialSummary, error) {
	var summary models.FinancialSummary
	err := r.db.WithContext(ctx).
		Model(&models.FinancialMovement{}).
		Select(`COALESCE(SUM(CASE WHEN tipo = 'ENTRADA' THEN valor ELSE 0 END), 0) AS total_entradas,
			COALESCE(SUM(CASE WHEN tipo = 'SAIDA' THEN valor ELSE 0 END), 0) AS total_saidas,
			COALESCE(SUM(CASE WHEN tipo = 'ENTRADA' THEN valor ELSE -valor END), 0) AS lucro,
			COALESCE(SUM(CASE WHEN status = 'A_PAGAR' THEN valor ELSE 0 END), 0) AS total_a_pagar,
			COALESCE(SUM(CASE WHEN status = 'A_RECEBER' THEN valor ELSE 0 END), 0) AS total_a_receber`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *financialRepository) FindAll(ctx context.Context) ([]models.FinancialMovement, error) {
	var movements []models.FinancialMovement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
