package repository

import (
	"context"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"gorm.io/gorm"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	CreateWithAddress(ctx context.Context, client *models.Client, address *models.Address) error
	Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.Client, error)
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context, query *ListQuery) ([]models.Client, int64, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("Endereco").
		First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// CreateWithAddress writes the address and the client in one transaction, so
// a rejected client leaves no orphan address row behind
func (r *clientRepository) CreateWithAddress(ctx context.Context, client *models.Client, address *models.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(address).Error; err != nil {
			return err
		}
		client.EnderecoID = &address.ID
		client.Endereco = address
		return tx.Create(client).Error
	})
}

func (r *clientRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.Client, error) {
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *clientRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *clientRepository) List(ctx context.Context, query *ListQuery) ([]models.Client, int64, error) {
	var clients []models.Client
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Client{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("nome_completo ILIKE ? OR email ILIKE ? OR escritorio ILIKE ?",
			search, search, search)
	}

	db.Count(&total)

	err := db.Preload("Endereco").
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&clients).Error
	return clients, total, err
}

func (r *clientRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&total).Error
	return total, err
}

func (r *clientRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("is_active = ?", true).
		Count(&total).Error
	return total, err
}
