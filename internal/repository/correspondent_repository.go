package repository

import (
	"context"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"gorm.io/gorm"
)

// CorrespondentRepository defines the interface for correspondent data access
type CorrespondentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Correspondent, error)
	FindByEmail(ctx context.Context, email string) (*models.Correspondent, error)
	FindByCPF(ctx context.Context, cpf string) (*models.Correspondent, error)
	FindByOAB(ctx context.Context, oab string) (*models.Correspondent, error)
	FindByApprovalStatus(ctx context.Context, status string) ([]models.Correspondent, error)
	FindAvailable(ctx context.Context, comarcas []string) ([]models.CorrespondentSummary, error)
	Create(ctx context.Context, correspondent *models.Correspondent) error
	CreateWithAddress(ctx context.Context, correspondent *models.Correspondent, address *models.Address) error
	Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.Correspondent, error)
	UpdateApprovalStatus(ctx context.Context, id uint, status string) (*models.Correspondent, error)
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context, query *ListQuery) ([]models.Correspondent, int64, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type correspondentRepository struct {
	db *gorm.DB
}

// NewCorrespondentRepository creates a new correspondent repository
func NewCorrespondentRepository(db *gorm.DB) CorrespondentRepository {
	return &correspondentRepository{db: db}
}

func (r *correspondentRepository) FindByID(ctx context.Context, id uint) (*models.Correspondent, error) {
	var correspondent models.Correspondent
	err := r.db.WithContext(ctx).
		Preload("Endereco").
		First(&correspondent, id).Error
	if err != nil {
		return nil, err
	}
	return &correspondent, nil
}

func (r *correspondentRepository) FindByEmail(ctx context.Context, email string) (*models.Correspondent, error) {
	var correspondent models.Correspondent
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&correspondent).Error
	if err != nil {
		return nil, err
	}
	return &correspondent, nil
}

func (r *correspondentRepository) FindByCPF(ctx context.Context, cpf string) (*models.Correspondent, error) {
	var correspondent models.Correspondent
	err := r.db.WithContext(ctx).
		Where("cpf = ?", cpf).
		First(&correspondent).Error
	if err != nil {
		return nil, err
	}
	return &correspondent, nil
}

func (r *correspondentRepository) FindByOAB(ctx context.Context, oab string) (*models.Correspondent, error) {
	var correspondent models.Correspondent
	err := r.db.WithContext(ctx).
		Where("oab = ?", oab).
		First(&correspondent).Error
	if err != nil {
		return nil, err
	}
	return &correspondent, nil
}

func (r *correspondentRepository) FindByApprovalStatus(ctx context.Context, status string) ([]models.Correspondent, error) {
	var correspondents []models.Correspondent
	err := r.db.WithContext(ctx).
		Preload("Endereco").
		Where("status_aprovacao = ?", status).
		Order("created_at ASC").
		Find(&correspondents).Error
	return correspondents, err
}

// FindAvailable filters active, approved correspondents whose service-area
// text matches at least one of the supplied terms. Oldest registered first.
func (r *correspondentRepository) FindAvailable(ctx context.Context, comarcas []string) ([]models.CorrespondentSummary, error) {
	db := r.db.WithContext(ctx).
		Model(&models.Correspondent{}).
		Where("is_active = ? AND status_aprovacao = ?", true, models.ApprovalApproved)

	if len(comarcas) > 0 {
		match := r.db.Session(&gorm.Session{NewDB: true})
		for i, comarca := range comarcas {
			pattern := "%" + comarca + "%"
			if i == 0 {
				match = match.Where("comarcas_atendidas ILIKE ?", pattern)
			} else {
				match = match.Or("comarcas_atendidas ILIKE ?", pattern)
			}
		}
		db = db.Where(match)
	}

	var summaries []models.CorrespondentSummary
	err := db.
		Select("id", "nome_completo", "tipo", "comarcas_atendidas", "email").
		Order("created_at ASC").
		Find(&summaries).Error
	return summaries, err
}

func (r *correspondentRepository) Create(ctx context.Context, correspondent *models.Correspondent) error {
	return r.db.WithContext(ctx).Create(correspondent).Error
}

// CreateWithAddress writes the address and the correspondent in one
// transaction, so a rejected registration leaves no orphan address row behind
func (r *correspondentRepository) CreateWithAddress(ctx context.Context, correspondent *models.Correspondent, address *models.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(address).Error; err != nil {
			return err
		}
		correspondent.EnderecoID = &address.ID
		correspondent.Endereco = address
		return tx.Create(correspondent).Error
	})
}

func (r *correspondentRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.Correspondent, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Correspondent{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *correspondentRepository) UpdateApprovalStatus(ctx context.Context, id uint, status string) (*models.Correspondent, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Correspondent{}).
		Where("id = ?", id).
		Update("status_aprovacao", status).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *correspondentRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Correspondent{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *correspondentRepository) List(ctx context.Context, query *ListQuery) ([]models.Correspondent, int64, error) {
	var correspondents []models.Correspondent
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Correspondent{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("nome_completo ILIKE ? OR email ILIKE ? OR comarcas_atendidas ILIKE ?",
			search, search, search)
	}
	if status := query.Filters["status_aprovacao"]; status != "" {
		db = db.Where("status_aprovacao = ?", status)
	}
	if active := query.Filters["is_active"]; active != "" {
		db = db.Where("is_active = ?", active == "true")
	}

	db.Count(&total)

	err := db.Preload("Endereco").
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&correspondents).Error
	return correspondents, total, err
}

func (r *correspondentRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Correspondent{}).Count(&total).Error
	return total, err
}

func (r *correspondentRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Correspondent{}).
		Where("is_active = ?", true).
		Count(&total).Error
	return total, err
}
