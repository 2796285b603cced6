package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"gorm.io/gorm"
)

// CorrespondentService handles the admin-side correspondent roster: listing,
// profile edits, the approval queue and availability matching.
type CorrespondentService struct {
	repo        repository.CorrespondentRepository
	addressRepo repository.AddressRepository
}

// NewCorrespondentService creates a new correspondent service
func NewCorrespondentService(repo repository.CorrespondentRepository, addressRepo repository.AddressRepository) *CorrespondentService {
	return &CorrespondentService{repo: repo, addressRepo: addressRepo}
}

// List returns correspondents with search and filters applied
func (s *CorrespondentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Correspondent, int64, error) {
	return s.repo.List(ctx, query)
}

// GetByID fetches a single correspondent
func (s *CorrespondentService) GetByID(ctx context.Context, id uint) (*models.Correspondent, error) {
	correspondent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, correspondentNotFound(err)
	}
	return correspondent, nil
}

// CorrespondentUpdate is the sparse correspondent update payload
type CorrespondentUpdate struct {
	NomeCompleto      *string       `json:"nome_completo"`
	Telefone          *string       `json:"telefone"`
	ComarcasAtendidas *string       `json:"comarcas_atendidas"`
	OAB               *string       `json:"oab"`
	Endereco          *AddressInput `json:"endereco"`
}

// Update applies a sparse update to a correspondent's profile and address
func (s *CorrespondentService) Update(ctx context.Context, id uint, update CorrespondentUpdate) (*models.Correspondent, error) {
	correspondent, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, correspondentNotFound(err)
	}

	fields := make(map[string]interface{})
	if update.NomeCompleto != nil {
		fields["nome_completo"] = *update.NomeCompleto
	}
	if update.Telefone != nil {
		fields["telefone"] = *update.Telefone
	}
	if update.ComarcasAtendidas != nil {
		fields["comarcas_atendidas"] = *update.ComarcasAtendidas
	}
	if update.OAB != nil {
		fields["oab"] = *update.OAB
	}

	if update.Endereco != nil {
		addressID, err := upsertAddress(ctx, s.addressRepo, correspondent.EnderecoID, *update.Endereco)
		if err != nil {
			return nil, err
		}
		if correspondent.EnderecoID == nil {
			fields["endereco_id"] = addressID
		}
	} else if len(fields) == 0 {
		return nil, fail(ErrBadRequest, "Nenhum campo para atualizar")
	}

	if len(fields) == 0 {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Updates(ctx, id, fields)
	if err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, fail(ErrDuplicate, "OAB já cadastrada")
		}
		return nil, err
	}
	return updated, nil
}

// SetActive toggles a correspondent's active flag. Deactivation does not
// unassign demands already in flight.
func (s *CorrespondentService) SetActive(ctx context.Context, id uint, active bool) (*models.Correspondent, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, correspondentNotFound(err)
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Pending returns the approval queue, oldest registration first
func (s *CorrespondentService) Pending(ctx context.Context) ([]models.Correspondent, error) {
	return s.repo.FindByApprovalStatus(ctx, models.ApprovalPending)
}

// Approve marks a correspondent as approved for assignment matching
func (s *CorrespondentService) Approve(ctx context.Context, id uint) (*models.Correspondent, error) {
	return s.setApproval(ctx, id, models.ApprovalApproved)
}

// Reject marks a correspondent as rejected
func (s *CorrespondentService) Reject(ctx context.Context, id uint) (*models.Correspondent, error) {
	return s.setApproval(ctx, id, models.ApprovalRejected)
}

func (s *CorrespondentService) setApproval(ctx context.Context, id uint, status string) (*models.Correspondent, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, correspondentNotFound(err)
	}
	return s.repo.UpdateApprovalStatus(ctx, id, status)
}

// FindAvailable matches active, approved correspondents against a
// comma-separated list of comarca terms
func (s *CorrespondentService) FindAvailable(ctx context.Context, comarcas string) ([]models.CorrespondentSummary, error) {
	var terms []string
	for _, term := range strings.Split(comarcas, ",") {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	return s.repo.FindAvailable(ctx, terms)
}

func correspondentNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, "Correspondente não encontrado")
	}
	return err
}
