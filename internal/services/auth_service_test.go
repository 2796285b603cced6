package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jurisconnect/jurisconnect-api/internal/config"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockClientRepo struct {
	repository.ClientRepository
	mockFindByEmail       func(ctx context.Context, email string) (*models.Client, error)
	mockCreateWithAddress func(ctx context.Context, client *models.Client, address *models.Address) error
}

func (m *mockClientRepo) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockClientRepo) CreateWithAddress(ctx context.Context, client *models.Client, address *models.Address) error {
	return m.mockCreateWithAddress(ctx, client, address)
}

type mockAdminRepo struct {
	repository.AdminRepository
	mockFindByEmail     func(ctx context.Context, email string) (*models.Admin, error)
	mockUpdateLastLogin func(ctx context.Context, id uint) error
	lastLoginUpdated    bool
}

func (m *mockAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockAdminRepo) UpdateLastLogin(ctx context.Context, id uint) error {
	m.lastLoginUpdated = true
	if m.mockUpdateLastLogin != nil {
		return m.mockUpdateLastLogin(ctx, id)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
}

func notFoundClientRepo() *mockClientRepo {
	return &mockClientRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Client, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func notFoundCorrespondentRepo() *mockCorrespondentRepo {
	return &mockCorrespondentRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Correspondent, error) {
			return nil, gorm.ErrRecordNotFound
		},
		mockFindByCPF: func(ctx context.Context, cpf string) (*models.Correspondent, error) {
			return nil, gorm.ErrRecordNotFound
		},
		mockFindByOAB: func(ctx context.Context, oab string) (*models.Correspondent, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func notFoundAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Admin, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	service := NewAuthService(notFoundClientRepo(), notFoundCorrespondentRepo(), notFoundAdminRepo(), testConfig())

	result, err := service.SignIn(context.Background(), "ninguem@example.com", "senha123")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	hash, err := HashPassword("senha-correta")
	assert.NoError(t, err)

	clientRepo := &mockClientRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Client, error) {
			return &models.Client{ID: 1, Email: email, SenhaHash: hash, IsActive: true}, nil
		},
	}
	service := NewAuthService(clientRepo, notFoundCorrespondentRepo(), notFoundAdminRepo(), testConfig())

	result, err := service.SignIn(context.Background(), "cliente@example.com", "senha-errada")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SignIn_InactiveClientRejected(t *testing.T) {
	hash, err := HashPassword("senha123")
	assert.NoError(t, err)

	clientRepo := &mockClientRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Client, error) {
			return &models.Client{ID: 1, Email: email, SenhaHash: hash, IsActive: false}, nil
		},
	}
	service := NewAuthService(clientRepo, notFoundCorrespondentRepo(), notFoundAdminRepo(), testConfig())

	result, err := service.SignIn(context.Background(), "inativo@example.com", "senha123")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SignIn_ClientWinsOverAdmin(t *testing.T) {
	// The lookup order is client, correspondent, admin; a matching client
	// short-circuits the rest
	hash, err := HashPassword("senha123")
	assert.NoError(t, err)

	clientRepo := &mockClientRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Client, error) {
			return &models.Client{ID: 1, NomeCompleto: "Ana Lima", Email: email, SenhaHash: hash, IsActive: true}, nil
		},
	}
	adminRepo := &mockAdminRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Admin, error) {
			return &models.Admin{ID: 2, Nome: "Admin", Email: email, SenhaHash: hash, IsActive: true}, nil
		},
	}
	service := NewAuthService(clientRepo, notFoundCorrespondentRepo(), adminRepo, testConfig())

	result, err := service.SignIn(context.Background(), "ana@example.com", "senha123")
	assert.NoError(t, err)
	assert.Equal(t, models.ProfileClient, result.User.Profile)
	assert.Equal(t, "Ana Lima", result.User.Nome)
	assert.NotEmpty(t, result.Token)
	assert.False(t, adminRepo.lastLoginUpdated)
}

func TestAuthService_SignIn_AdminUpdatesLastLogin(t *testing.T) {
	hash, err := HashPassword("senha123")
	assert.NoError(t, err)

	adminRepo := &mockAdminRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Admin, error) {
			return &models.Admin{ID: 3, Nome: "Admin", Email: email, SenhaHash: hash, IsActive: true}, nil
		},
	}
	service := NewAuthService(notFoundClientRepo(), notFoundCorrespondentRepo(), adminRepo, testConfig())

	result, err := service.SignIn(context.Background(), "admin@example.com", "senha123")
	assert.NoError(t, err)
	assert.Equal(t, models.ProfileAdmin, result.User.Profile)
	assert.True(t, adminRepo.lastLoginUpdated)
}

func TestAuthService_SignIn_CorrespondentCarriesTipo(t *testing.T) {
	hash, err := HashPassword("senha123")
	assert.NoError(t, err)

	correspondentRepo := notFoundCorrespondentRepo()
	correspondentRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.Correspondent, error) {
		return &models.Correspondent{
			ID:           5,
			NomeCompleto: "João Alves",
			Email:        email,
			SenhaHash:    hash,
			IsActive:     true,
			Tipo:         models.CorrespondentTypeLawyer,
		}, nil
	}
	service := NewAuthService(notFoundClientRepo(), correspondentRepo, notFoundAdminRepo(), testConfig())

	result, err := service.SignIn(context.Background(), "joao@example.com", "senha123")
	assert.NoError(t, err)
	assert.Equal(t, models.ProfileCorrespondent, result.User.Profile)
	assert.Equal(t, models.CorrespondentTypeLawyer, result.User.Tipo)
}

func TestAuthService_VerifyToken_RoundTrip(t *testing.T) {
	service := NewAuthService(notFoundClientRepo(), notFoundCorrespondentRepo(), notFoundAdminRepo(), testConfig())

	token, err := service.generateJWT(9, "ana@example.com", models.ProfileClient)
	assert.NoError(t, err)

	claims, err := service.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.Equal(t, models.ProfileClient, claims["profile"])

	_, err = service.VerifyToken(token + "corrompido")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterClient_DuplicateEmail(t *testing.T) {
	clientRepo := &mockClientRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.Client, error) {
			return &models.Client{ID: 1, Email: email}, nil
		},
	}
	service := NewAuthService(clientRepo, notFoundCorrespondentRepo(), notFoundAdminRepo(), testConfig())

	result, err := service.RegisterClient(context.Background(), RegisterClientInput{
		NomeCompleto: "Ana Lima",
		Email:        "ana@example.com",
		Senha:        "senha123",
	})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAuthService_RegisterCorrespondent_LawyerRequiresOAB(t *testing.T) {
	service := NewAuthService(notFoundClientRepo(), notFoundCorrespondentRepo(), notFoundAdminRepo(), testConfig())

	result, err := service.RegisterCorrespondent(context.Background(), RegisterCorrespondentInput{
		NomeCompleto: "João Alves",
		Tipo:         models.CorrespondentTypeLawyer,
		CPF:          "12345678900",
		Email:        "joao@example.com",
		Senha:        "senha123",
	})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestAuthService_RegisterCorrespondent_DuplicateCPF(t *testing.T) {
	correspondentRepo := notFoundCorrespondentRepo()
	correspondentRepo.mockFindByCPF = func(ctx context.Context, cpf string) (*models.Correspondent, error) {
		return &models.Correspondent{ID: 2, CPF: cpf}, nil
	}
	service := NewAuthService(notFoundClientRepo(), correspondentRepo, notFoundAdminRepo(), testConfig())

	result, err := service.RegisterCorrespondent(context.Background(), RegisterCorrespondentInput{
		NomeCompleto: "João Alves",
		Tipo:         models.CorrespondentTypeRepresentative,
		CPF:          "12345678900",
		Email:        "joao@example.com",
		Senha:        "senha123",
	})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAuthService_RegisterClient_CreatesClientAndAddressTogether(t *testing.T) {
	var createdClient *models.Client
	var createdAddress *models.Address

	clientRepo := notFoundClientRepo()
	clientRepo.mockCreateWithAddress = func(ctx context.Context, client *models.Client, address *models.Address) error {
		address.ID = 7
		client.EnderecoID = &address.ID
		client.Endereco = address
		createdClient = client
		createdAddress = address
		return nil
	}
	service := NewAuthService(clientRepo, notFoundCorrespondentRepo(), notFoundAdminRepo(), testConfig())

	result, err := service.RegisterClient(context.Background(), RegisterClientInput{
		NomeCompleto: "Ana Lima",
		Email:        "ana@example.com",
		Senha:        "senha123",
		Endereco:     AddressInput{Cidade: "Recife", Estado: "PE"},
	})
	require.NoError(t, err)
	require.NotNil(t, createdClient)
	require.NotNil(t, createdAddress)

	assert.Equal(t, "Recife", createdAddress.Cidade)
	assert.Equal(t, uint(7), *result.EnderecoID)
	assert.True(t, VerifyPassword("senha123", result.SenhaHash))
	assert.NotEqual(t, "senha123", result.SenhaHash)
}

func TestAuthService_RegisterClient_UniqueViolationMapsToDuplicate(t *testing.T) {
	clientRepo := notFoundClientRepo()
	clientRepo.mockCreateWithAddress = func(ctx context.Context, client *models.Client, address *models.Address) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "clientes_email_key"}
	}
	service := NewAuthService(clientRepo, notFoundCorrespondentRepo(), notFoundAdminRepo(), testConfig())

	result, err := service.RegisterClient(context.Background(), RegisterClientInput{
		NomeCompleto: "Ana Lima",
		Email:        "ana@example.com",
		Senha:        "senha123",
	})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAuthService_RegisterCorrespondent_StoresPasswordHash(t *testing.T) {
	correspondentRepo := notFoundCorrespondentRepo()
	correspondentRepo.mockCreateWithAddress = func(ctx context.Context, correspondent *models.Correspondent, address *models.Address) error {
		address.ID = 3
		correspondent.EnderecoID = &address.ID
		correspondent.Endereco = address
		return nil
	}
	service := NewAuthService(notFoundClientRepo(), correspondentRepo, notFoundAdminRepo(), testConfig())

	result, err := service.RegisterCorrespondent(context.Background(), RegisterCorrespondentInput{
		NomeCompleto: "João Alves",
		Tipo:         models.CorrespondentTypeRepresentative,
		CPF:          "12345678900",
		Email:        "joao@example.com",
		Senha:        "senha123",
		Endereco:     AddressInput{Cidade: "Olinda", Estado: "PE"},
	})
	require.NoError(t, err)

	assert.True(t, VerifyPassword("senha123", result.SenhaHash))
	assert.NotEqual(t, "senha123", result.SenhaHash)
	assert.Equal(t, models.ApprovalPending, result.StatusAprovacao)
	assert.Equal(t, uint(3), *result.EnderecoID)
}

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("segredo")
	assert.NoError(t, err)
	assert.True(t, VerifyPassword("segredo", hash))
	assert.False(t, VerifyPassword("outro", hash))
}
