package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/policy"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockDemandRepo struct {
	repository.DemandRepository
	mockFindByID            func(ctx context.Context, id uint) (*models.Demand, error)
	mockCreate              func(ctx context.Context, demand *models.Demand) error
	mockUpdateStatus        func(ctx context.Context, id uint, status string) (*models.Demand, error)
	mockAssignCorrespondent func(ctx context.Context, id, correspondentID, adminID uint) (*models.Demand, error)
	mockUpdates             func(ctx context.Context, id uint, fields map[string]interface{}) (*models.Demand, error)
}

func (m *mockDemandRepo) FindByID(ctx context.Context, id uint) (*models.Demand, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockDemandRepo) Create(ctx context.Context, demand *models.Demand) error {
	return m.mockCreate(ctx, demand)
}

func (m *mockDemandRepo) UpdateStatus(ctx context.Context, id uint, status string) (*models.Demand, error) {
	return m.mockUpdateStatus(ctx, id, status)
}

func (m *mockDemandRepo) AssignCorrespondent(ctx context.Context, id, correspondentID, adminID uint) (*models.Demand, error) {
	return m.mockAssignCorrespondent(ctx, id, correspondentID, adminID)
}

func (m *mockDemandRepo) Updates(ctx context.Context, id uint, fields map[string]interface{}) (*models.Demand, error) {
	return m.mockUpdates(ctx, id, fields)
}

type mockCorrespondentRepo struct {
	repository.CorrespondentRepository
	mockFindByID          func(ctx context.Context, id uint) (*models.Correspondent, error)
	mockFindByEmail       func(ctx context.Context, email string) (*models.Correspondent, error)
	mockFindByCPF         func(ctx context.Context, cpf string) (*models.Correspondent, error)
	mockFindByOAB         func(ctx context.Context, oab string) (*models.Correspondent, error)
	mockCreateWithAddress func(ctx context.Context, correspondent *models.Correspondent, address *models.Address) error
}

func (m *mockCorrespondentRepo) FindByID(ctx context.Context, id uint) (*models.Correspondent, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockCorrespondentRepo) FindByEmail(ctx context.Context, email string) (*models.Correspondent, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockCorrespondentRepo) FindByCPF(ctx context.Context, cpf string) (*models.Correspondent, error) {
	return m.mockFindByCPF(ctx, cpf)
}

func (m *mockCorrespondentRepo) FindByOAB(ctx context.Context, oab string) (*models.Correspondent, error) {
	return m.mockFindByOAB(ctx, oab)
}

func (m *mockCorrespondentRepo) CreateWithAddress(ctx context.Context, correspondent *models.Correspondent, address *models.Address) error {
	return m.mockCreateWithAddress(ctx, correspondent, address)
}

type mockActivityLogRepo struct {
	repository.ActivityLogRepository
	entries   []models.ActivityLog
	createErr error
}

func (m *mockActivityLogRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func newDemandServiceForTest(demandRepo *mockDemandRepo, correspondentRepo *mockCorrespondentRepo, logRepo *mockActivityLogRepo) *DemandService {
	return NewDemandService(demandRepo, correspondentRepo, NewActivityLogService(logRepo))
}

func pendingDemand(id, clientID uint, correspondentID *uint) *models.Demand {
	return &models.Demand{
		ID:               id,
		Titulo:           "Audiência trabalhista",
		Status:           models.DemandStatusPending,
		ClienteID:        clientID,
		CorrespondenteID: correspondentID,
	}
}

func TestDemandService_GetByID_ForbiddenNotNotFound(t *testing.T) {
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return pendingDemand(id, 10, nil), nil
		},
	}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, &mockActivityLogRepo{})

	// A different client sees Forbidden, not NotFound
	_, err := service.GetByID(context.Background(), 1, policy.Actor{ID: 99, Profile: models.ProfileClient})
	assert.ErrorIs(t, err, ErrForbidden)

	// The owner sees the demand
	demand, err := service.GetByID(context.Background(), 1, policy.Actor{ID: 10, Profile: models.ProfileClient})
	assert.NoError(t, err)
	assert.Equal(t, uint(10), demand.ClienteID)
}

func TestDemandService_GetByID_NotFound(t *testing.T) {
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, &mockActivityLogRepo{})

	_, err := service.GetByID(context.Background(), 42, policy.Actor{ID: 1, Profile: models.ProfileAdmin})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDemandService_UpdateStatus_ClientAlwaysForbidden(t *testing.T) {
	// Even the demand's owner cannot change status as a client
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return pendingDemand(id, 10, nil), nil
		},
	}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, &mockActivityLogRepo{})

	_, err := service.UpdateStatus(context.Background(), 1, models.DemandStatusInProgress, policy.Actor{ID: 10, Profile: models.ProfileClient})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDemandService_UpdateStatus_CorrespondentMustBeAssignee(t *testing.T) {
	assigned := uint(7)
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return pendingDemand(id, 10, &assigned), nil
		},
		mockUpdateStatus: func(ctx context.Context, id uint, status string) (*models.Demand, error) {
			d := pendingDemand(id, 10, &assigned)
			d.Status = status
			return d, nil
		},
	}
	logRepo := &mockActivityLogRepo{}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, logRepo)

	_, err := service.UpdateStatus(context.Background(), 1, models.DemandStatusInProgress, policy.Actor{ID: 8, Profile: models.ProfileCorrespondent})
	assert.ErrorIs(t, err, ErrForbidden)

	demand, err := service.UpdateStatus(context.Background(), 1, models.DemandStatusInProgress, policy.Actor{ID: 7, Profile: models.ProfileCorrespondent})
	assert.NoError(t, err)
	assert.Equal(t, models.DemandStatusInProgress, demand.Status)
	assert.Len(t, logRepo.entries, 1)
	assert.Equal(t, models.LogTypeStatusChange, logRepo.entries[0].TipoLog)
}

func TestDemandService_UpdateStatus_InvalidValue(t *testing.T) {
	service := newDemandServiceForTest(&mockDemandRepo{}, &mockCorrespondentRepo{}, &mockActivityLogRepo{})

	_, err := service.UpdateStatus(context.Background(), 1, "Arquivada", policy.Actor{ID: 1, Profile: models.ProfileAdmin})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestDemandService_UpdateStatus_IdempotentSameStatus(t *testing.T) {
	// Setting the current status again succeeds both times and writes one
	// audit entry per call
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			d := pendingDemand(id, 10, nil)
			d.Status = models.DemandStatusInProgress
			return d, nil
		},
		mockUpdateStatus: func(ctx context.Context, id uint, status string) (*models.Demand, error) {
			d := pendingDemand(id, 10, nil)
			d.Status = status
			return d, nil
		},
	}
	logRepo := &mockActivityLogRepo{}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, logRepo)
	admin := policy.Actor{ID: 1, Profile: models.ProfileAdmin}

	for i := 0; i < 2; i++ {
		demand, err := service.UpdateStatus(context.Background(), 1, models.DemandStatusInProgress, admin)
		assert.NoError(t, err)
		assert.Equal(t, models.DemandStatusInProgress, demand.Status)
	}
	assert.Len(t, logRepo.entries, 2)
}

func TestDemandService_UpdateStatus_IrregularTransitionPersists(t *testing.T) {
	// Cumprida → Pendente is not a regular lifecycle edge but still persists
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			d := pendingDemand(id, 10, nil)
			d.Status = models.DemandStatusCompleted
			return d, nil
		},
		mockUpdateStatus: func(ctx context.Context, id uint, status string) (*models.Demand, error) {
			d := pendingDemand(id, 10, nil)
			d.Status = status
			return d, nil
		},
	}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, &mockActivityLogRepo{})

	demand, err := service.UpdateStatus(context.Background(), 1, models.DemandStatusPending, policy.Actor{ID: 1, Profile: models.ProfileAdmin})
	assert.NoError(t, err)
	assert.Equal(t, models.DemandStatusPending, demand.Status)
}

func TestDemandService_Assign_InactiveCorrespondent(t *testing.T) {
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return pendingDemand(id, 10, nil), nil
		},
	}
	correspondentRepo := &mockCorrespondentRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Correspondent, error) {
			return &models.Correspondent{ID: id, IsActive: false, StatusAprovacao: models.ApprovalApproved}, nil
		},
	}
	service := newDemandServiceForTest(demandRepo, correspondentRepo, &mockActivityLogRepo{})

	_, err := service.Assign(context.Background(), 1, 7, 1)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestDemandService_Assign_DoesNotCheckApproval(t *testing.T) {
	// Direct assignment works even for a PENDENTE correspondent; only the
	// availability matching filters on approval
	assigned := uint(7)
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return pendingDemand(id, 10, nil), nil
		},
		mockAssignCorrespondent: func(ctx context.Context, id, correspondentID, adminID uint) (*models.Demand, error) {
			d := pendingDemand(id, 10, &assigned)
			d.AdminResponsavelID = &adminID
			return d, nil
		},
	}
	correspondentRepo := &mockCorrespondentRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Correspondent, error) {
			return &models.Correspondent{
				ID:              id,
				NomeCompleto:    "Maria Souza",
				IsActive:        true,
				StatusAprovacao: models.ApprovalPending,
			}, nil
		},
	}
	logRepo := &mockActivityLogRepo{}
	service := newDemandServiceForTest(demandRepo, correspondentRepo, logRepo)

	demand, err := service.Assign(context.Background(), 1, 7, 3)
	assert.NoError(t, err)
	assert.Equal(t, &assigned, demand.CorrespondenteID)
	assert.Len(t, logRepo.entries, 1)
	assert.Equal(t, models.LogTypeUpdate, logRepo.entries[0].TipoLog)
}

func TestDemandService_Create_StartsPendingWithAudit(t *testing.T) {
	demandRepo := &mockDemandRepo{
		mockCreate: func(ctx context.Context, demand *models.Demand) error {
			demand.ID = 55
			return nil
		},
	}
	logRepo := &mockActivityLogRepo{}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, logRepo)

	demand, err := service.Create(context.Background(), CreateDemandInput{
		Titulo:            "Citação",
		DescricaoCompleta: "Citação do réu",
		TipoDemanda:       "Diligência",
	}, 10)
	assert.NoError(t, err)
	assert.Equal(t, models.DemandStatusPending, demand.Status)
	assert.Equal(t, uint(10), demand.ClienteID)
	assert.Nil(t, demand.CorrespondenteID)
	assert.Len(t, logRepo.entries, 1)
	assert.Equal(t, models.LogTypeCreation, logRepo.entries[0].TipoLog)
	assert.Equal(t, uint(55), logRepo.entries[0].DemandaID)
}

func TestDemandService_Create_SurvivesAuditFailure(t *testing.T) {
	demandRepo := &mockDemandRepo{
		mockCreate: func(ctx context.Context, demand *models.Demand) error {
			demand.ID = 56
			return nil
		},
	}
	logRepo := &mockActivityLogRepo{createErr: errors.New("log table unavailable")}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, logRepo)

	demand, err := service.Create(context.Background(), CreateDemandInput{
		Titulo:            "Protocolo",
		DescricaoCompleta: "Protocolar petição",
		TipoDemanda:       "Protocolo",
	}, 10)
	assert.NoError(t, err)
	assert.NotNil(t, demand)
}

func TestDemandService_Update_NoFields(t *testing.T) {
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return pendingDemand(id, 10, nil), nil
		},
	}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, &mockActivityLogRepo{})

	_, err := service.Update(context.Background(), 1, DemandUpdate{}, policy.Actor{ID: 1, Profile: models.ProfileAdmin})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestDemandService_Update_SparseFields(t *testing.T) {
	var captured map[string]interface{}
	demandRepo := &mockDemandRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Demand, error) {
			return pendingDemand(id, 10, nil), nil
		},
		mockUpdates: func(ctx context.Context, id uint, fields map[string]interface{}) (*models.Demand, error) {
			captured = fields
			return pendingDemand(id, 10, nil), nil
		},
	}
	service := newDemandServiceForTest(demandRepo, &mockCorrespondentRepo{}, &mockActivityLogRepo{})

	titulo := "Novo título"
	valor := 350.0
	_, err := service.Update(context.Background(), 1, DemandUpdate{
		Titulo:               &titulo,
		ValorPropostoCliente: &valor,
	}, policy.Actor{ID: 10, Profile: models.ProfileClient})
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"titulo":                 "Novo título",
		"valor_proposto_cliente": 350.0,
	}, captured)
}
