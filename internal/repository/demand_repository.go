package repository

import (
	"context"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"gorm.io/gorm"
)

// DemandRepository defines the interface for demand data access.
// Demands are never hard-deleted.
type DemandRepository interface {
	Create(ctx context.Context, demand *models.Demand) error
	FindByID(ctx context.Context, id uint) (*models.Demand, error)
	FindByClientID(ctx context.Context, clientID uint, query *ListQuery) ([]models.Demand, error)
	FindByCorrespondentID(ctx context.Context, correspondentID uint, query *ListQuery) ([]models.Demand, error)
	FindAll(ctx context.Context, query *ListQuery) ([]models.Demand, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Demand, error)
	AssignCorrespondent(ctx context.Context, id, correspondentID, adminID uint) (*models.Demand, error)
	Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.Demand, error)
	Stats(ctx context.Context) (*models.DemandStats, error)
	Recent(ctx context.Context, limit int) ([]models.Demand, error)
}

type demandRepository struct {
	db *gorm.DB
}

// NewDemandRepository creates a new demand repository
func NewDemandRepository(db *gorm.DB) DemandRepository {
	return &demandRepository{db: db}
}

func (r *demandRepository) Create(ctx context.Context, demand *models.Demand) error {
	return r.db.WithContext(ctx).Create(demand).Error
}

func (r *demandRepository) FindByID(ctx context.Context, id uint) (*models.Demand, error) {
	var demand models.Demand
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Correspondente").
		Preload("Admin").
		First(&demand, id).Error
	if err != nil {
		return nil, err
	}
	return &demand, nil
}

func (r *demandRepository) FindByClientID(ctx context.Context, clientID uint, query *ListQuery) ([]models.Demand, error) {
	var demands []models.Demand
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Correspondente").
		Preload("Admin").
		Where("cliente_id = ?", clientID).
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&demands).Error
	return demands, err
}

func (r *demandRepository) FindByCorrespondentID(ctx context.Context, correspondentID uint, query *ListQuery) ([]models.Demand, error) {
	var demands []models.Demand
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Correspondente").
		Preload("Admin").
		Where("correspondente_id = ?", correspondentID).
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&demands).Error
	return demands, err
}

func (r *demandRepository) FindAll(ctx context.Context, query *ListQuery) ([]models.Demand, error) {
	var demands []models.Demand
	db := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Correspondente").
		Preload("Admin")

	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}

	err := db.Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&demands).Error
	return demands, err
}

func (r *demandRepository) UpdateStatus(ctx context.Context, id uint, status string) (*models.Demand, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Demand{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// AssignCorrespondent sets correspondent and responsible admin in a single
// UPDATE so both references always change together.
func (r *demandRepository) AssignCorrespondent(ctx context.Context, id, correspondentID, adminID uint) (*models.Demand, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Demand{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"correspondente_id":    correspondentID,
			"admin_responsavel_id": adminID,
		}).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *demandRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.Demand, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Demand{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *demandRepository) Stats(ctx context.Context) (*models.DemandStats, error) {
	var stats models.DemandStats
	err := r.db.WithContext(ctx).
		Model(&models.Demand{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'Pendente') AS pendentes,
			COUNT(*) FILTER (WHERE status = 'Em Andamento') AS em_andamento,
			COUNT(*) FILTER (WHERE status = 'Cumprida') AS cumpridas,
			COUNT(*) FILTER (WHERE status = 'Cancelada') AS canceladas,
			COALESCE(AVG(valor_proposto_cliente), 0) AS valor_medio,
			COUNT(*) FILTER (WHERE status = 'Pendente' AND correspondente_id IS NULL) AS pendentes_sem_correspondente`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *demandRepository) Recent(ctx context.Context, limit int) ([]models.Demand, error) {
	var demands []models.Demand
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Correspondente").
		Order("created_at DESC").
		Limit(limit).
		Find(&demands).Error
	return demands, err
}
