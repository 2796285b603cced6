package services

import (
	"context"
	"errors"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"gorm.io/gorm"
)

// ClientService handles the admin-side client roster
type ClientService struct {
	repo        repository.ClientRepository
	addressRepo repository.AddressRepository
}

// NewClientService creates a new client service
func NewClientService(repo repository.ClientRepository, addressRepo repository.AddressRepository) *ClientService {
	return &ClientService{repo: repo, addressRepo: addressRepo}
}

// List returns clients with search applied
func (s *ClientService) List(ctx context.Context, query *repository.ListQuery) ([]models.Client, int64, error) {
	return s.repo.List(ctx, query)
}

// GetByID fetches a single client
func (s *ClientService) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, clientNotFound(err)
	}
	return client, nil
}

// ClientUpdate is the sparse client update payload
type ClientUpdate struct {
	NomeCompleto *string       `json:"nome_completo"`
	Escritorio   *string       `json:"escritorio"`
	Telefone     *string       `json:"telefone"`
	Endereco     *AddressInput `json:"endereco"`
}

// Update applies a sparse update to a client's profile and address
func (s *ClientService) Update(ctx context.Context, id uint, update ClientUpdate) (*models.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, clientNotFound(err)
	}

	fields := make(map[string]interface{})
	if update.NomeCompleto != nil {
		fields["nome_completo"] = *update.NomeCompleto
	}
	if update.Escritorio != nil {
		fields["escritorio"] = *update.Escritorio
	}
	if update.Telefone != nil {
		fields["telefone"] = *update.Telefone
	}

	if update.Endereco != nil {
		addressID, err := upsertAddress(ctx, s.addressRepo, client.EnderecoID, *update.Endereco)
		if err != nil {
			return nil, err
		}
		if client.EnderecoID == nil {
			fields["endereco_id"] = addressID
		}
	} else if len(fields) == 0 {
		return nil, fail(ErrBadRequest, "Nenhum campo para atualizar")
	}

	if len(fields) == 0 {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.Updates(ctx, id, fields)
}

// SetActive toggles a client's active flag; inactive clients cannot sign in
func (s *ClientService) SetActive(ctx context.Context, id uint, active bool) (*models.Client, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, clientNotFound(err)
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func clientNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, "Cliente não encontrado")
	}
	return err
}
